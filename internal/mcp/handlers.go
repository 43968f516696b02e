package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/vijay-prabhu/housematch/internal/database"
	"github.com/vijay-prabhu/housematch/internal/match"
)

const defaultListLimit = 20

func (s *Server) registerHandlers() {
	s.handlers["find_matches"] = s.handleFindMatches
	s.handlers["parse_query"] = s.handleParseQuery
	s.handlers["get_listing"] = s.handleGetListing
	s.handlers["list_listings"] = s.handleListListings
	s.handlers["get_stats"] = s.handleGetStats
}

type findMatchesParams struct {
	Query string `json:"query"`
	TopN  *int   `json:"top_n"`
}

type findMatchesResult struct {
	Response string              `json:"response"`
	Matches  []match.ScoredMatch `json:"matches"`
}

func (s *Server) handleFindMatches(ctx context.Context, params json.RawMessage) (interface{}, error) {
	var p findMatchesParams
	if err := json.Unmarshal(params, &p); err != nil {
		return nil, fmt.Errorf("invalid parameters: %w", err)
	}

	topN := s.config.Matching.TopN
	if p.TopN != nil {
		topN = *p.TopN
	}

	listings, err := s.db.ListListings(ctx, database.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}

	matches, err := s.matcher.FindMatches(p.Query, listings, topN)
	if err != nil {
		return nil, err
	}

	return findMatchesResult{
		Response: s.matcher.GenerateResponse(p.Query, matches),
		Matches:  matches,
	}, nil
}

type parseQueryParams struct {
	Query string `json:"query"`
}

func (s *Server) handleParseQuery(ctx context.Context, params json.RawMessage) (interface{}, error) {
	var p parseQueryParams
	if err := json.Unmarshal(params, &p); err != nil {
		return nil, fmt.Errorf("invalid parameters: %w", err)
	}

	return s.matcher.Extract(p.Query), nil
}

type getListingParams struct {
	ID string `json:"id"`
}

func (s *Server) handleGetListing(ctx context.Context, params json.RawMessage) (interface{}, error) {
	var p getListingParams
	if err := json.Unmarshal(params, &p); err != nil {
		return nil, fmt.Errorf("invalid parameters: %w", err)
	}

	if p.ID == "" {
		return nil, fmt.Errorf("id is required")
	}

	l, err := s.db.GetListing(ctx, p.ID)
	if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	if l == nil {
		return nil, fmt.Errorf("listing not found: %s", p.ID)
	}

	return l, nil
}

type listListingsParams struct {
	PropertyType string   `json:"property_type"`
	MaxPrice     *float64 `json:"max_price"`
	Limit        int      `json:"limit"`
}

func (s *Server) handleListListings(ctx context.Context, params json.RawMessage) (interface{}, error) {
	var p listListingsParams
	if params != nil {
		if err := json.Unmarshal(params, &p); err != nil {
			return nil, fmt.Errorf("invalid parameters: %w", err)
		}
	}

	opts := database.ListOptions{MaxPrice: p.MaxPrice}

	if p.PropertyType != "" {
		opts.PropertyType = &p.PropertyType
	}

	if p.Limit > 0 {
		opts.Limit = p.Limit
	} else {
		opts.Limit = defaultListLimit
	}

	listings, err := s.db.ListListings(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}

	return listings, nil
}

func (s *Server) handleGetStats(ctx context.Context, params json.RawMessage) (interface{}, error) {
	stats, err := s.db.GetStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}

	return stats, nil
}

// Resource handlers

func (s *Server) handleReadResource(ctx context.Context, uri string) (string, error) {
	switch uri {
	case "housing://summary":
		return s.getResourceSummary(ctx)
	case "housing://listings":
		return s.getResourceListings(ctx)
	default:
		return "", fmt.Errorf("unknown resource: %s", uri)
	}
}

func (s *Server) getResourceSummary(ctx context.Context) (string, error) {
	stats, err := s.db.GetStats(ctx)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("Listings Summary\n================\n")
	fmt.Fprintf(&b, "Total Listings: %d\n", stats.TotalListings)

	if stats.TotalListings == 0 {
		b.WriteString("\nNo listings yet. Run 'housematch import <file>' to add some.\n")
		return b.String(), nil
	}

	types := make([]string, 0, len(stats.ByPropertyType))
	for t := range stats.ByPropertyType {
		types = append(types, t)
	}
	sort.Strings(types)
	for _, t := range types {
		fmt.Fprintf(&b, "  - %-10s %d\n", t+":", stats.ByPropertyType[t])
	}

	fmt.Fprintf(&b, "\nPrice Range: $%s - $%s (avg $%s)\n",
		humanize.Commaf(stats.MinPrice), humanize.Commaf(stats.MaxPrice), humanize.Commaf(float64(int(stats.AvgPrice))))
	fmt.Fprintf(&b, "Average Bedrooms: %.1f\n", stats.AvgBedrooms)
	fmt.Fprintf(&b, "Campus: %s\n", s.matcher.Campus().Name)

	return b.String(), nil
}

func (s *Server) getResourceListings(ctx context.Context) (string, error) {
	listings, err := s.db.ListListings(ctx, database.ListOptions{})
	if err != nil {
		return "", err
	}

	result := "Listings\n========\n\n"

	if len(listings) == 0 {
		result += "No listings yet.\n"
		return result, nil
	}

	for _, l := range listings {
		result += fmt.Sprintf("- %s | %s | $%s/month | %d bed | %s | %s\n",
			l.ID, l.Title, humanize.Commaf(l.Price), l.Bedrooms, l.PropertyType, l.Address)
	}

	return result, nil
}
