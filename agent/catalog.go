package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	preipo "github.com/stupidvibecoder/pre-ipo"
	"github.com/stupidvibecoder/pre-ipo/renderer"
	"google.golang.org/genai"
)

// Catalog is what the browser and the analyst know about: funding events, profiles and the
// current baseline rate.
type Catalog struct {
	Data     *preipo.Dataset
	Profiles preipo.Profiles
	Rate     float64
	Options  renderer.Options
}

// Find returns the entity id matching name, ignoring case.
func (c *Catalog) Find(name string) (string, bool) {
	name = strings.TrimSpace(name)
	if c.Data.Has(name) {
		return name, true
	}
	for _, id := range c.Data.Entities() {
		if strings.EqualFold(id, name) {
			return id, true
		}
		if p, ok := c.Profiles.Get(id); ok && strings.EqualFold(p.Name, name) {
			return id, true
		}
	}
	return "", false
}

// Index renders the table of all entities.
func (c *Catalog) Index(ctx context.Context) (string, error) {
	as, err := c.Data.AnalyzeAll(ctx, c.Rate, 0)
	if err != nil {
		return "", err
	}
	return renderer.RenderIndex(as, c.Profiles, c.Options), nil
}

// Report renders the full report of an entity.
func (c *Catalog) Report(id string) (string, error) {
	r, err := preipo.NewReport(c.Data, id, c.Profiles, c.Rate)
	if err != nil {
		return "", err
	}
	return renderer.RenderReport(r, c.Options), nil
}

// Functions returns the tools exposing the catalog to the model.
func (c *Catalog) Functions() []Function {
	return []Function{
		&Func{
			Decl: &genai.FunctionDeclaration{
				Name:        "list_companies",
				Description: "Lists every company with its number of funding rounds, last valuation, total capital raised, CAGR, valuation efficiency and performance against the baseline growth.",
				Response: &genai.Schema{
					Type:        genai.TypeString,
					Description: "A markdown table, one row per company.",
				},
			},
			Func: func(ctx context.Context, args map[string]any) (string, error) {
				return c.Index(ctx)
			},
		},
		&Func{
			Decl: &genai.FunctionDeclaration{
				Name:        "company_report",
				Description: "Returns the profile, the growth metrics and the funding history of one company.",
				Parameters: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"company": {Type: genai.TypeString, Description: "The company name."},
					},
					Required: []string{"company"},
				},
				Response: &genai.Schema{
					Type:        genai.TypeString,
					Description: "A markdown document.",
				},
			},
			Func: func(ctx context.Context, args map[string]any) (string, error) {
				id, err := c.company(args)
				if err != nil {
					return "", err
				}
				return c.Report(id)
			},
		},
		&Func{
			Decl: &genai.FunctionDeclaration{
				Name:        "company_metrics",
				Description: "Computes the growth metrics of one company against a baseline annual growth rate, for what-if comparisons.",
				Parameters: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"company":  {Type: genai.TypeString, Description: "The company name."},
						"baseline": {Type: genai.TypeNumber, Description: "The baseline annual growth rate as a fraction, 0.4 for 40%. The current baseline if absent."},
					},
					Required: []string{"company"},
				},
				Response: &genai.Schema{
					Type:        genai.TypeString,
					Description: "The metrics as a JSON object.",
				},
			},
			Func: func(ctx context.Context, args map[string]any) (string, error) {
				id, err := c.company(args)
				if err != nil {
					return "", err
				}
				rate := c.Rate
				if v, ok := args["baseline"]; ok {
					f, ok := v.(float64)
					if !ok {
						return "", fmt.Errorf("argument 'baseline' is not a number as expected but %T", v)
					}
					rate = f
				}
				m, ok, err := preipo.ComputeMetrics(c.Data.Events(id), rate)
				if err != nil {
					return "", err
				}
				if !ok {
					return "", fmt.Errorf("metrics are not computable for %s", id)
				}
				out, err := json.Marshal(m)
				return string(out), err
			},
		},
	}
}

// company resolves the 'company' argument of a function call.
func (c *Catalog) company(args map[string]any) (string, error) {
	v, ok := args["company"].(string)
	if !ok {
		return "", fmt.Errorf("argument 'company' is not a string as expected but %T", args["company"])
	}
	id, ok := c.Find(v)
	if !ok {
		return "", fmt.Errorf("unknown company %q", v)
	}
	return id, nil
}
