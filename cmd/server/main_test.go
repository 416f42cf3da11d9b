package main

import "testing"

func TestBuildOverridesLeavesUnsetFlagsNil(t *testing.T) {
	t.Parallel()

	overrides := buildOverrides(cliFlags{rateLimitRPS: -1, rateLimitBurst: -1})

	if overrides.Port != nil || overrides.BuildConfigPath != nil || overrides.Watch != nil {
		t.Fatalf("expected unset flags to stay nil: %+v", overrides)
	}
	if overrides.RateLimitRPS != nil || overrides.RateLimitBurst != nil {
		t.Fatalf("expected negative rate limits to stay nil: %+v", overrides)
	}
}

func TestBuildOverridesAppliesSetFlags(t *testing.T) {
	t.Parallel()

	overrides := buildOverrides(cliFlags{
		configFile:      "service.yaml",
		port:            "9000",
		buildConfigPath: "styles/panel.json",
		watch:           false,
		watchSet:        true,
		rateLimitRPS:    10,
		rateLimitBurst:  20,
	})

	if overrides.ConfigFile != "service.yaml" {
		t.Fatalf("unexpected config file: %s", overrides.ConfigFile)
	}
	if overrides.Port == nil || *overrides.Port != "9000" {
		t.Fatalf("expected port override, got %+v", overrides.Port)
	}
	if overrides.BuildConfigPath == nil || *overrides.BuildConfigPath != "styles/panel.json" {
		t.Fatalf("expected build config override, got %+v", overrides.BuildConfigPath)
	}
	if overrides.Watch == nil || *overrides.Watch {
		t.Fatalf("expected watch disabled override, got %+v", overrides.Watch)
	}
	if overrides.RateLimitRPS == nil || *overrides.RateLimitRPS != 10 {
		t.Fatalf("expected rate limit rps override, got %+v", overrides.RateLimitRPS)
	}
	if overrides.RateLimitBurst == nil || *overrides.RateLimitBurst != 20 {
		t.Fatalf("expected rate limit burst override, got %+v", overrides.RateLimitBurst)
	}
}
