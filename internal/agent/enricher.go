package agent

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/anjy7/ascendo/internal/bus"
	"github.com/anjy7/ascendo/internal/model"
	"github.com/anjy7/ascendo/internal/resolve"
	"github.com/anjy7/ascendo/internal/state"
	"github.com/anjy7/ascendo/pkg/oracle"
)

// EnricherName is the enricher's bus address.
const EnricherName = "EnricherAgent"

// Enricher fills in industry, size, and description for scraped companies.
// It asks the oracle when one is configured and falls back to keyword
// inference from the company name otherwise. Results are cached per company
// so repeated requests over the bus stay cheap.
type Enricher struct {
	base
	oracle oracle.Oracle
	cache  map[string]model.Enrichment
}

// NewEnricher creates the enricher and registers it on the bus. A nil oracle
// is allowed; enrichment then uses only local inference.
func NewEnricher(b *bus.Bus, orc oracle.Oracle, log *zap.Logger) *Enricher {
	e := &Enricher{
		base:   newBase(EnricherName, b, log),
		oracle: orc,
		cache:  make(map[string]model.Enrichment),
	}
	e.register(e.Handle)
	return e
}

// Process enriches every company in the scrape result, mutating the company
// records in place.
func (e *Enricher) Process(ctx context.Context, st *state.State) error {
	if st.Conference == nil {
		e.log.Warn("no conference data to enrich")
		return nil
	}

	companies := st.Conference.Companies
	e.log.Info("enriching companies", zap.Int("count", len(companies)))

	for i := range companies {
		c := &companies[i]
		enriched := e.enrich(ctx, c.Name, st.CompanyDetails(c.Name))

		if enriched.Industry != "" && enriched.Industry != "Unknown" {
			c.Industry = enriched.Industry
		}
		if c.SizeCategory == "" {
			c.SizeCategory = enriched.SizeEstimate
		}
		if c.Description == "" {
			c.Description = enriched.Description
		}
		if c.Headquarters == "" && enriched.Headquarters != "Unknown" {
			c.Headquarters = enriched.Headquarters
		}
		if c.Size == nil && enriched.EmployeeCountEstimate != nil {
			count := *enriched.EmployeeCountEstimate
			c.Size = &count
		}
	}

	e.send(OrchestratorName, model.MessageResponse, model.PhaseComplete{
		Phase:  "enrichment",
		Counts: map[string]int{"companies_enriched": len(companies)},
	})
	return nil
}

// Handle answers enrichment requests from other agents.
func (e *Enricher) Handle(msg model.Message) *model.Message {
	switch p := msg.Payload.(type) {
	case model.EnrichRequest:
		data := e.enrich(context.Background(), p.CompanyName, p.Known)
		return e.reply(msg, model.MessageResponse, model.EnrichResult{
			CompanyName: p.CompanyName,
			Data:        data,
		})

	case model.IndustryRequest:
		industry := "Unknown"
		if cached, ok := e.cache[resolve.Fold(p.CompanyName)]; ok && cached.Industry != "" {
			industry = cached.Industry
		} else if inferred := inferIndustry(p.CompanyName); inferred != "" {
			industry = inferred
		}
		return e.reply(msg, model.MessageResponse, model.IndustryResponse{
			CompanyName: p.CompanyName,
			Industry:    industry,
		})
	}
	return nil
}

func (e *Enricher) enrich(ctx context.Context, name string, known model.CompanyDetails) model.Enrichment {
	key := resolve.Fold(name)
	if cached, ok := e.cache[key]; ok {
		return cached
	}

	if e.oracle != nil {
		enriched, err := e.oracle.EnrichCompany(ctx, name, known)
		if err == nil {
			e.cache[key] = *enriched
			return *enriched
		}
		e.log.Debug("oracle enrichment failed, using inference",
			zap.String("company", name), zap.Error(err))
	}

	result := basicEnrichment(name)
	e.cache[key] = result
	return result
}

// industryKeywords maps inferred industries to name fragments. Crude, but it
// keeps the pipeline useful without an oracle.
var industryKeywords = []struct {
	industry string
	keywords []string
}{
	{"Manufacturing", []string{"manufacturing", "industrial", "equipment", "machinery"}},
	{"Healthcare/Medical", []string{"medical", "health", "pharma", "biotech", "hospital"}},
	{"Technology", []string{"tech", "software", "digital", "data", "cloud"}},
	{"Energy/Utilities", []string{"energy", "power", "utility", "electric", "gas", "oil"}},
	{"Telecommunications", []string{"telecom", "wireless", "network", "communications"}},
	{"Transportation", []string{"logistics", "transport", "shipping", "freight"}},
	{"Building/Construction", []string{"construction", "building", "hvac", "elevator"}},
}

func inferIndustry(name string) string {
	lower := strings.ToLower(name)
	for _, entry := range industryKeywords {
		for _, kw := range entry.keywords {
			if strings.Contains(lower, kw) {
				return entry.industry
			}
		}
	}
	return ""
}

func basicEnrichment(name string) model.Enrichment {
	result := model.Enrichment{
		Industry:     "Unknown",
		SizeEstimate: "Unknown",
		Headquarters: "Unknown",
		Confidence:   "Low",
	}
	if industry := inferIndustry(name); industry != "" {
		result.Industry = industry
	}
	return result
}
