package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"terracity.io/internal/previewproto"
)

type statusOut struct {
	URL             string `json:"url"`
	Healthy         bool   `json:"healthy"`
	ProtocolVersion string `json:"protocol_version,omitempty"`
	Seed            int64  `json:"seed"`
	SeaLevel        int    `json:"sea_level"`
	Biomes          int    `json:"biomes"`
	Blocks          int    `json:"blocks"`
	TuningDigest    string `json:"tuning_digest,omitempty"`
}

func statusCmd(args []string) {
	fs := flag.NewFlagSet("status", flag.ExitOnError)
	baseURL := fs.String("url", "http://127.0.0.1:8080", "server base url")
	_ = fs.Parse(args)

	st, err := fetchStatus(&http.Client{Timeout: 5 * time.Second}, *baseURL)
	printJSON(st)
	if err != nil {
		fmt.Fprintln(os.Stderr, "status:", err)
		os.Exit(1)
	}
}

func fetchStatus(cl *http.Client, baseURL string) (statusOut, error) {
	base := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	st := statusOut{URL: base}

	resp, err := cl.Get(base + "/healthz")
	if err != nil {
		return st, err
	}
	resp.Body.Close()
	st.Healthy = resp.StatusCode/100 == 2

	resp, err = cl.Get(base + "/v1/bootstrap")
	if err != nil {
		return st, err
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return st, fmt.Errorf("bootstrap: %s", resp.Status)
	}
	var boot previewproto.BootstrapResponse
	if err := json.NewDecoder(resp.Body).Decode(&boot); err != nil {
		return st, fmt.Errorf("bootstrap: %w", err)
	}
	st.ProtocolVersion = boot.ProtocolVersion
	st.Seed = boot.WorldParams.Seed
	st.SeaLevel = boot.WorldParams.SeaLevel
	st.Biomes = len(boot.BiomePalette)
	st.Blocks = len(boot.BlockPalette)
	st.TuningDigest = boot.TuningDigest
	if !st.Healthy {
		return st, fmt.Errorf("healthz not ok")
	}
	return st, nil
}
