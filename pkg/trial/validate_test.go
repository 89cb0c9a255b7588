package trial

import (
	"errors"
	"strings"
	"testing"
)

func allocationTrial() Trial {
	return Trial{
		Type: "survey-allocation",
		Fields: []Field{
			{Name: "allocation_1", Kind: FieldAllocation},
			{Name: "allocation_2", Kind: FieldAllocation},
		},
		Rules: []Rule{
			{Kind: RuleSumEquals, Params: map[string]string{ParamGroup: "allocation", ParamTarget: "100"}},
		},
	}
}

func TestValidateAcceptsAllocationDescriptor(t *testing.T) {
	if err := allocationTrial().Validate(); err != nil {
		t.Fatalf("expected valid descriptor, got %v", err)
	}
}

func TestValidateConfigurationErrors(t *testing.T) {
	cases := []struct {
		name       string
		mutate     func(*Trial)
		wantReason string
	}{
		{
			name:       "missing field name",
			mutate:     func(tr *Trial) { tr.Fields[0].Name = "" },
			wantReason: "name is required",
		},
		{
			name:       "duplicate field name",
			mutate:     func(tr *Trial) { tr.Fields[1].Name = "allocation_1" },
			wantReason: "duplicate field name",
		},
		{
			name:       "unknown field kind",
			mutate:     func(tr *Trial) { tr.Fields[0].Kind = "dial" },
			wantReason: "unknown field kind",
		},
		{
			name: "radio without options",
			mutate: func(tr *Trial) {
				tr.Fields[0] = Field{Name: "pick_one", Kind: FieldRadio}
				tr.Rules = nil
			},
			wantReason: "requires options",
		},
		{
			name: "scale without levels",
			mutate: func(tr *Trial) {
				tr.Fields[0] = Field{Name: "agreement", Kind: FieldScale}
				tr.Rules = nil
			},
			wantReason: "requires levels",
		},
		{
			name:       "rule without kind",
			mutate:     func(tr *Trial) { tr.Rules[0].Kind = "" },
			wantReason: "kind is required",
		},
		{
			name:       "sum rule without group",
			mutate:     func(tr *Trial) { delete(tr.Rules[0].Params, ParamGroup) },
			wantReason: `missing "group" param`,
		},
		{
			name:       "sum rule without target",
			mutate:     func(tr *Trial) { delete(tr.Rules[0].Params, ParamTarget) },
			wantReason: `missing "target" param`,
		},
		{
			name:       "sum rule with non-numeric target",
			mutate:     func(tr *Trial) { tr.Rules[0].Params[ParamTarget] = "lots" },
			wantReason: "is not numeric",
		},
		{
			name:       "group matches no field",
			mutate:     func(tr *Trial) { tr.Rules[0].Params[ParamGroup] = "budget" },
			wantReason: "matches no field",
		},
		{
			name: "custom rule with dangling group",
			mutate: func(tr *Trial) {
				tr.Rules = []Rule{{Kind: "spellCheck", Params: map[string]string{ParamGroup: "essay"}}}
			},
			wantReason: "matches no field",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tr := allocationTrial()
			tc.mutate(&tr)

			err := tr.Validate()
			if err == nil {
				t.Fatalf("expected configuration error")
			}
			var cfgErr *ConfigurationError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("expected *ConfigurationError, got %T", err)
			}
			if !strings.Contains(err.Error(), tc.wantReason) {
				t.Fatalf("error %q does not mention %q", err.Error(), tc.wantReason)
			}
		})
	}
}

func TestValidateDuplicateNamesOptIn(t *testing.T) {
	tr := Trial{
		AllowDuplicateNames: true,
		Fields: []Field{
			{Name: "color", Kind: FieldText},
			{Name: "color", Kind: FieldText},
		},
	}
	if err := tr.Validate(); err != nil {
		t.Fatalf("expected opt-in duplicates to validate, got %v", err)
	}
}

func TestValidateAllowsCustomRuleKinds(t *testing.T) {
	tr := allocationTrial()
	tr.Rules = append(tr.Rules, Rule{Kind: "spellCheck"})
	if err := tr.Validate(); err != nil {
		t.Fatalf("custom rule kind should pass structural validation, got %v", err)
	}
}
