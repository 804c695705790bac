package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"

	apivaluation "intrinsic_value/pkg/api/valuation"
	"intrinsic_value/pkg/core/assumption"
	"intrinsic_value/pkg/core/ingest"
	"intrinsic_value/pkg/core/pipeline"
)

// AppConfig is the server configuration read from config/app.yaml.
// Everything has a working default; the file only overrides.
type AppConfig struct {
	ListenAddr   string `yaml:"listen_addr"`
	MarketSuffix string `yaml:"market_suffix"`
	PresetsPath  string `yaml:"presets_path"`
	Provider     struct {
		FundamentalsURL string `yaml:"fundamentals_url"`
		ChartURL        string `yaml:"chart_url"`
		QuotePageURL    string `yaml:"quote_page_url"`
	} `yaml:"provider"`
}

func loadConfig() AppConfig {
	cfg := AppConfig{
		ListenAddr:   ":8080",
		MarketSuffix: pipeline.DefaultMarketSuffix,
		PresetsPath:  "resources/assumptions.hjson",
	}

	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = "config/app.yaml"
	}
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Printf("[WARNING] Config %s not found, using defaults\n", path)
		return cfg
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		fmt.Printf("[WARNING] Failed to parse %s: %v, using defaults\n", path, err)
	}
	if addr := os.Getenv("LISTEN_ADDR"); addr != "" {
		cfg.ListenAddr = addr
	}
	return cfg
}

func main() {
	// Load environment variables
	godotenv.Load()

	cfg := loadConfig()

	presets := assumption.Load(cfg.PresetsPath)
	fmt.Printf("[PRESETS] growth=%.2f%% discount=%.2f%% period=%dy\n",
		presets.GrowthRate*100, presets.DiscountRate*100, presets.ProjectionYears)

	client := ingest.NewClient()
	if cfg.Provider.FundamentalsURL != "" {
		client.FundamentalsBaseURL = cfg.Provider.FundamentalsURL
	}
	if cfg.Provider.ChartURL != "" {
		client.ChartBaseURL = cfg.Provider.ChartURL
	}
	if cfg.Provider.QuotePageURL != "" {
		client.Scraper.BaseURL = cfg.Provider.QuotePageURL
	}

	orchestrator := pipeline.NewOrchestrator(client)
	if cfg.MarketSuffix != "" {
		orchestrator.SetMarketSuffix(cfg.MarketSuffix)
	} else if presets.MarketSuffix != "" {
		orchestrator.SetMarketSuffix(presets.MarketSuffix)
	}

	handler := apivaluation.NewHandler(orchestrator, presets)
	http.HandleFunc("/api/valuation", handler.HandleValuation)
	http.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	fmt.Printf("API server starting on %s...\n", cfg.ListenAddr)
	fmt.Println("  - POST /api/valuation")
	fmt.Println("  - GET  /healthz")

	if err := http.ListenAndServe(cfg.ListenAddr, nil); err != nil {
		fmt.Printf("[FATAL] Server failed to start: %v\n", err)
		os.Exit(1)
	}
}
