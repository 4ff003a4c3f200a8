package cmd

import (
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
	preipo "github.com/stupidvibecoder/pre-ipo"
)

// Completion describes the command line for shell completion.
func Completion() *complete.Command {
	entities := complete.PredictFunc(predictEntities)
	dataFiles := predict.Or(predict.Files("*.csv"), predict.Files("*.jsonl"), predict.Files("*.json"), predict.Files("*.xlsx"))
	return &complete.Command{
		Sub: map[string]*complete.Command{
			"list":    {Flags: map[string]complete.Predictor{"workers": predict.Something}},
			"series":  {Flags: map[string]complete.Predictor{"e": entities, "as-of": predict.Something, "json": predict.Nothing}},
			"metrics": {Flags: map[string]complete.Predictor{"e": entities, "json": predict.Nothing}},
			"report":  {Flags: map[string]complete.Predictor{"e": entities}},
			"export":  {Flags: map[string]complete.Predictor{"o": predict.Files("*.jsonl")}},
			"serve":   {Flags: map[string]complete.Predictor{"addr": predict.Something}},
			"browse":  {},
			"topic":   {Args: predict.Set{"data", "metrics", "config", "*"}},
			"help":    {},
		},
		Flags: map[string]complete.Predictor{
			"config":   predict.Files("*.yaml"),
			"data":     dataFiles,
			"profiles": predict.Files("*.yaml"),
			"baseline": predict.Something,
			"currency": predict.Set{"USD", "EUR", "GBP", "JPY", "CHF", "CNY"},
			"unit":     predict.Set{"B", "M", "K"},
			"from":     predict.Something,
			"to":       predict.Something,
			"v":        predict.Nothing,
			"raw":      predict.Nothing,
		},
	}
}

// predictEntities completes entity names from the default configuration.
func predictEntities(prefix string) []string {
	c, err := LoadConfig(DefaultConfigFile, true)
	if err != nil {
		return nil
	}
	d, err := preipo.Load(c.Data, preipo.LoadOptions{Sheet: c.Sheet, Selector: c.Selector})
	if err != nil {
		return nil
	}
	return d.Entities()
}
