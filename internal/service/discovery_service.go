// internal/service/discovery_service.go
package service

import (
	"log"
	"strings"

	"github.com/unclebandit/leadleopard-backend/internal/model"
	"github.com/unclebandit/leadleopard-backend/internal/platform"
	"github.com/unclebandit/leadleopard-backend/internal/repository"
)

const (
	minFollowers = 100
	maxFollowers = 100000
)

// industryKeywords is the static keyword table used to derive search terms
// and to judge relevance.
var industryKeywords = map[string][]string{
	"real_estate": {
		"real estate", "property", "realtor", "realty", "homes", "houses",
		"apartments", "condos", "villas", "commercial property", "real estate agent",
	},
	"construction": {
		"construction", "building", "contractor", "developer", "construction company",
		"building contractor", "construction services", "general contractor",
	},
	"architecture": {
		"architecture", "architect", "architectural design", "building design",
		"interior design", "landscape architecture", "architectural firm",
	},
}

// IndustryKeywords returns the keyword list for an industry, falling back to
// the industry name itself.
func IndustryKeywords(industry string) []string {
	if kws, ok := industryKeywords[industry]; ok {
		return kws
	}
	return []string{industry}
}

type DiscoveryService struct {
	AccountRepo  repository.AccountRepositoryInterface
	CampaignRepo repository.CampaignRepositoryInterface
	Platform     platform.Client

	// MaxPerKeyword bounds the per-keyword search fan-out.
	MaxPerKeyword int
	// GlobalTerms are operator-configured keywords and locations accepted as
	// relevance matches on top of the campaign's own industry keywords.
	GlobalTerms []string
}

// DiscoverTargets finds candidate accounts for a campaign and persists the
// survivors as pending targets. A failing keyword search is logged and
// skipped; it never aborts the remaining keywords.
func (s *DiscoveryService) DiscoverTargets(campaignID, maxAccounts int) ([]*model.TargetAccount, error) {
	campaign, err := s.CampaignRepo.GetByID(campaignID)
	if err != nil {
		return nil, err
	}

	keywords := IndustryKeywords(campaign.TargetIndustry)
	if campaign.TargetLocation != "" {
		keywords = append(keywords, campaign.TargetLocation)
	}
	keywords = append(keywords, s.GlobalTerms...)

	perKeyword := s.MaxPerKeyword
	if perKeyword <= 0 {
		perKeyword = 20
	}

	// Deduplicate across keywords, keeping the higher follower count when
	// the same username collides.
	candidates := map[string]platform.Profile{}
	for _, kw := range keywords {
		profiles, err := s.Platform.SearchAccounts([]string{kw}, campaign.TargetLocation, perKeyword)
		if err != nil {
			log.Printf("⚠️ Search failed for keyword %q: %v\n", kw, err)
			continue
		}
		for _, p := range profiles {
			existing, seen := candidates[p.Username]
			if !seen || p.FollowerCount > existing.FollowerCount {
				candidates[p.Username] = p
			}
		}
	}

	saved := []*model.TargetAccount{}
	for _, p := range candidates {
		if maxAccounts > 0 && len(saved) >= maxAccounts {
			break
		}
		if !s.shouldTarget(p, campaign) {
			continue
		}

		known, err := s.AccountRepo.Find(p.Username)
		if err != nil {
			log.Println("⚠️ Account lookup failed:", err)
			continue
		}
		if known != nil {
			continue // no re-discovery of known accounts
		}

		account := &model.TargetAccount{
			Username:       p.Username,
			FullName:       p.FullName,
			Bio:            p.Bio,
			FollowerCount:  p.FollowerCount,
			FollowingCount: p.FollowingCount,
			PostCount:      p.PostCount,
			IsVerified:     p.IsVerified,
			IsBusiness:     p.IsBusiness,
			IsPrivate:      p.IsPrivate,
			Category:       campaign.TargetIndustry,
			Location:       p.Location,
			Status:         model.AccountPending,
		}
		inserted, err := s.AccountRepo.Upsert(account)
		if err != nil {
			log.Println("⚠️ Failed to save target account:", err)
			continue
		}
		if inserted {
			saved = append(saved, account)
		}
	}

	if len(saved) > 0 {
		if err := s.CampaignRepo.AddTargeted(campaignID, len(saved)); err != nil {
			log.Println("⚠️ Failed to update accounts_targeted:", err)
		}
	}

	log.Printf("Discovered %d target accounts for campaign %d\n", len(saved), campaignID)
	return saved, nil
}

// shouldTarget applies the eligibility filters: public, follower range, and
// at least one industry/location keyword in the bio or name.
func (s *DiscoveryService) shouldTarget(p platform.Profile, campaign *model.Campaign) bool {
	if p.IsPrivate {
		return false
	}
	if p.FollowerCount < minFollowers || p.FollowerCount > maxFollowers {
		return false
	}

	haystack := strings.ToLower(p.Bio + " " + p.FullName)
	for _, kw := range IndustryKeywords(campaign.TargetIndustry) {
		if strings.Contains(haystack, strings.ToLower(kw)) {
			return true
		}
	}
	if campaign.TargetLocation != "" &&
		strings.Contains(haystack, strings.ToLower(campaign.TargetLocation)) {
		return true
	}
	for _, term := range s.GlobalTerms {
		if term != "" && strings.Contains(haystack, strings.ToLower(term)) {
			return true
		}
	}
	return false
}
