package application

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/linskybing/formbuilder-go/internal/domain/widget"
	"github.com/linskybing/formbuilder-go/pkg/jsonval"
	"go.uber.org/zap"
	"gopkg.in/yaml.v2"
)

//go:embed seed/widgets.yaml
var builtinWidgets []byte

type seedWidget struct {
	widget.CreateWidgetInput `yaml:",inline"`

	Config          map[string]any `yaml:"widget_config"`
	ValidationRules map[string]any `yaml:"validation_rules"`
	DefaultProps    map[string]any `yaml:"default_props"`
}

// SeedResult counts what a seed run did.
type SeedResult struct {
	Created int `json:"created"`
	Skipped int `json:"skipped"`
}

// ParseWidgetCatalog decodes a YAML widget catalog into create inputs.
func ParseWidgetCatalog(data []byte) ([]widget.CreateWidgetInput, error) {
	var items []seedWidget
	if err := yaml.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("parse widget catalog: %w", err)
	}

	inputs := make([]widget.CreateWidgetInput, 0, len(items))
	for _, item := range items {
		in := item.CreateWidgetInput
		for _, f := range []struct {
			src map[string]any
			dst **jsonval.Value
		}{
			{item.Config, &in.WidgetConfig},
			{item.ValidationRules, &in.ValidationRules},
			{item.DefaultProps, &in.DefaultProps},
		} {
			if f.src == nil {
				continue
			}
			v, err := jsonval.From(normalizeYAML(f.src))
			if err != nil {
				return nil, fmt.Errorf("widget %s: %w", in.WidgetCode, err)
			}
			*f.dst = &v
		}
		inputs = append(inputs, in)
	}
	return inputs, nil
}

// normalizeYAML rewrites the map[interface{}]interface{} values produced by
// yaml.v2 into JSON encodable maps.
func normalizeYAML(v any) any {
	switch x := v.(type) {
	case map[any]any:
		out := make(map[string]any, len(x))
		for k, val := range x {
			out[fmt.Sprint(k)] = normalizeYAML(val)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, val := range x {
			out[k] = normalizeYAML(val)
		}
		return out
	case []any:
		for i := range x {
			x[i] = normalizeYAML(x[i])
		}
		return x
	default:
		return v
	}
}

// SeedWidgets creates every catalog widget whose code is not taken yet.
// A nil catalog seeds the built-in one.
func (s *WidgetService) SeedWidgets(ctx context.Context, catalog []byte) (SeedResult, error) {
	if catalog == nil {
		catalog = builtinWidgets
	}
	inputs, err := ParseWidgetCatalog(catalog)
	if err != nil {
		return SeedResult{}, err
	}

	var res SeedResult
	for _, in := range inputs {
		taken, err := s.Repos.Widget.CodeExists(ctx, in.WidgetCode)
		if err != nil {
			return res, s.fail.internal(ctx, err, "check widget code", zap.String("widget_code", in.WidgetCode))
		}
		if taken {
			res.Skipped++
			continue
		}
		if _, err := s.CreateWidget(ctx, in); err != nil {
			return res, fmt.Errorf("seed widget %s: %w", in.WidgetCode, err)
		}
		res.Created++
	}

	s.logger.Info("widget catalog seeded", zap.Int("created", res.Created), zap.Int("skipped", res.Skipped))
	return res, nil
}
