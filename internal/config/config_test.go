package config

import "testing"

func TestLoadAppliesDefaults(t *testing.T) {
	t.Setenv("IRONFORGED_DATA_DIR", "")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DataDir != "./data" {
		t.Fatalf("expected default data dir './data', got %q", cfg.DataDir)
	}
	if cfg.BusCapacity != 16 {
		t.Fatalf("expected default bus capacity 16, got %d", cfg.BusCapacity)
	}
	if cfg.GRPCAddress != ":7777" {
		t.Fatalf("expected default grpc address ':7777', got %q", cfg.GRPCAddress)
	}
}

func TestLoadHonorsOverrides(t *testing.T) {
	t.Setenv("IRONFORGED_DATA_DIR", "/var/lib/ironforged")
	t.Setenv("IRONFORGED_BUS_CAPACITY", "32")
	t.Setenv("IRONFORGED_LOG_JSON", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DataDir != "/var/lib/ironforged" {
		t.Fatalf("expected overridden data dir, got %q", cfg.DataDir)
	}
	if cfg.BusCapacity != 32 {
		t.Fatalf("expected overridden bus capacity 32, got %d", cfg.BusCapacity)
	}
	if !cfg.LogJSON {
		t.Fatal("expected LogJSON true")
	}
}
