// Package server provides a local preview UI for the generated assets.
package server

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"net/http"
	"strconv"
	"sync"

	"github.com/pkg/browser"

	"github.com/xob0t/stonegen/pkg/generator"
	"github.com/xob0t/stonegen/pkg/pipeline"
	"github.com/xob0t/stonegen/pkg/scene"
	"github.com/xob0t/stonegen/pkg/synth"
)

//go:embed web/*
var webContent embed.FS

// Limits for query parameters.
const (
	maxSize = 2048
	minRate = 4000
	maxRate = 48000
)

// ── Render cache ──

type asset struct {
	Data []byte
	Mime string
}

// assetCache memoizes rendered outputs. Every output is a pure function of
// its key, so entries never go stale.
type assetCache struct {
	mu     sync.RWMutex
	assets map[string]*asset
}

func newAssetCache() *assetCache {
	return &assetCache{assets: make(map[string]*asset)}
}

func (ac *assetCache) get(key string) (*asset, bool) {
	ac.mu.RLock()
	a, ok := ac.assets[key]
	ac.mu.RUnlock()
	return a, ok
}

func (ac *assetCache) add(key string, a *asset) {
	ac.mu.Lock()
	ac.assets[key] = a
	ac.mu.Unlock()
}

// ── Server ──

type srv struct {
	cache *assetCache
}

// NewHandler returns the preview UI and API routes.
func NewHandler() (http.Handler, error) {
	s := &srv{cache: newAssetCache()}

	webFS, err := fs.Sub(webContent, "web")
	if err != nil {
		return nil, fmt.Errorf("embed web: %w", err)
	}

	mux := http.NewServeMux()

	// API routes.
	mux.HandleFunc("GET /api/assets", s.handleListAssets)
	mux.HandleFunc("GET /api/icon/{scene}", s.handleIcon)
	mux.HandleFunc("GET /api/sound/{effect}", s.handleSound)

	// Static files.
	mux.Handle("/", http.FileServer(http.FS(webFS)))
	return mux, nil
}

// RunServe starts the preview server.
func RunServe(args []string) error {
	flags := flag.NewFlagSet("serve", flag.ExitOnError)
	var (
		port int
		open bool
	)
	flags.IntVar(&port, "port", 8080, "Port to listen on")
	flags.IntVar(&port, "p", 8080, "Port to listen on")
	flags.BoolVar(&open, "open", false, "Open the preview in a browser")
	if err := flags.Parse(args); err != nil {
		return err
	}

	h, err := NewHandler()
	if err != nil {
		return err
	}

	addr := fmt.Sprintf(":%d", port)
	url := fmt.Sprintf("http://localhost:%d", port)
	log.Printf("stonegen preview → %s", url)

	if open {
		go func() {
			if err := browser.OpenURL(url); err != nil {
				log.Printf("open browser: %v", err)
			}
		}()
	}

	return http.ListenAndServe(addr, h)
}

// ── Manifest ──

type manifestEntry struct {
	Name string `json:"name"`
	Path string `json:"path"`
	Kind string `json:"kind"`
	URL  string `json:"url"`
}

// previewURLs maps shipped asset names to the API route that renders them.
func previewURLs() map[string]string {
	urls := map[string]string{
		"app_icon":            "/api/icon/app?size=1024",
		"app_icon_foreground": "/api/icon/foreground?size=1024",
		"splash_logo":         "/api/icon/splash?size=512",
		"store_icon":          "/api/icon/app?size=512",
		"feature_graphic":     "/api/icon/feature",
	}
	for _, e := range synth.Effects {
		urls[e.String()] = "/api/sound/" + e.String()
	}
	return urls
}

func (s *srv) handleListAssets(w http.ResponseWriter, r *http.Request) {
	urls := previewURLs()
	var entries []manifestEntry
	for _, a := range pipeline.DefaultManifest() {
		entries = append(entries, manifestEntry{
			Name: a.Name,
			Path: a.Path,
			Kind: a.Kind.String(),
			URL:  urls[a.Name],
		})
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(entries)
}

// ── Render ──

func (s *srv) handleIcon(w http.ResponseWriter, r *http.Request) {
	k, err := scene.Parse(r.PathValue("scene"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	width, height := k.DefaultSize()
	if width, err = intParam(r, "size", width, 1, maxSize); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if k == scene.Feature {
		if height, err = intParam(r, "height", max(1, scene.FeatureHeight*width/scene.FeatureWidth), 1, maxSize); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}

	key := fmt.Sprintf("icon/%s/%dx%d", k, width, height)
	s.serve(w, key, ".png", func() (generator.Config, error) {
		c, err := scene.Render(k, width, height)
		if err != nil {
			return generator.Config{}, err
		}
		return generator.Config{Image: c}, nil
	})
}

func (s *srv) handleSound(w http.ResponseWriter, r *http.Request) {
	e, err := synth.ParseEffect(r.PathValue("effect"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	rate, err := intParam(r, "rate", synth.DefaultSampleRate, minRate, maxRate)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	key := fmt.Sprintf("sound/%s/%d", e, rate)
	s.serve(w, key, ".wav", func() (generator.Config, error) {
		samples, err := synth.Synthesize(e, rate, e.Duration())
		if err != nil {
			return generator.Config{}, err
		}
		return generator.Config{Samples: samples, SampleRate: rate}, nil
	})
}

var mimeTypes = map[string]string{
	".png": "image/png",
	".wav": "audio/wav",
}

func (s *srv) serve(w http.ResponseWriter, key, ext string, render generator.RendererFunc) {
	a, ok := s.cache.get(key)
	if !ok {
		cfg, err := render.Render()
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		var buf bytes.Buffer
		if err := generator.GenerateToWriter(&buf, ext, cfg); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		a = &asset{Data: buf.Bytes(), Mime: mimeTypes[ext]}
		s.cache.add(key, a)
	}
	w.Header().Set("Content-Type", a.Mime)
	w.Header().Set("Content-Length", strconv.Itoa(len(a.Data)))
	w.Write(a.Data)
}

// ── Helpers ──

var errParam = errors.New("invalid parameter")

func intParam(r *http.Request, name string, def, lo, hi int) (int, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < lo || n > hi {
		return 0, fmt.Errorf("%w: %s=%q (want %d..%d)", errParam, name, v, lo, hi)
	}
	return n, nil
}
