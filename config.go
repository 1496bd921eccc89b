// This file is part of the program "dragkern".
// Please see the LICENSE file for copyright information.

package main

import (
	"bytes"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/BurntSushi/toml"

	"dragkern/tool"
)

type masterConfig struct {
	Name        string
	LinkMetrics bool
}

type config struct {
	Tolerance  int
	FineFactor float64
	SnapStep   int
	LiveUpdate bool
	// Zoom is the view scale in percent of one pixel per font unit.
	Zoom     int
	LastText string
	FontPath string
	Masters  []masterConfig
	// Preferences is the tool's boolean key/value store.
	Preferences map[string]bool
}

const configFile = "config.toml"

func defaultMasters() []masterConfig {
	return []masterConfig{
		{Name: "Regular"},
		{Name: "Linked", LinkMetrics: true},
	}
}

func defaultConfig() config {
	return config{
		Tolerance:   tool.DefaultTolerance,
		FineFactor:  tool.DefaultFineFactor,
		SnapStep:    tool.DefaultSnapStep,
		LiveUpdate:  true,
		Zoom:        15,
		LastText:    "AVA Tov LTA",
		FontPath:    "",
		Masters:     defaultMasters(),
		Preferences: map[string]bool{tool.PrefShowMeasurements: true},
	}
}

func initializeConfigIfNot() {
	log.Println("Checking if config needs to be initialized")

	conf := defaultConfig()

	configdir := configDir()
	ok, err := exists(configdir)
	if err != nil {
		log.Fatalf("Couldn't check if config directory exists: %v\n", err)
	}
	if !ok {
		err = os.MkdirAll(configdir, 0700)
		if err != nil {
			log.Fatalf("Couldn't create config directory: %v\n", err)
		}
	}
	tomlfile := filepath.Join(configdir, configFile)
	ok, err = exists(tomlfile)
	if err != nil {
		log.Fatalf("Couldn't check if config file exists: %v\n", err)
	}
	if !ok {
		log.Println("Initializing config")
		writeConfig(&conf)
	}
}

func readConfig() *config {
	f := filepath.Join(configDir(), configFile)
	config := defaultConfig()
	// keys missing from the file keep their defaults, the masters are
	// replaced as a whole and the preferences merged below
	config.Masters = nil
	config.Preferences = nil
	if _, err := toml.DecodeFile(f, &config); err != nil {
		log.Fatalf("Couldn't read config file: %v\n", err)
	}
	if len(config.Masters) == 0 {
		config.Masters = defaultMasters()
	}
	if config.Preferences == nil {
		config.Preferences = make(map[string]bool)
	}
	for k, v := range defaultConfig().Preferences {
		if _, ok := config.Preferences[k]; !ok {
			config.Preferences[k] = v
		}
	}

	return &config
}

func writeConfig(conf *config) {
	f := filepath.Join(configDir(), configFile)
	var buffer bytes.Buffer
	if err := toml.NewEncoder(&buffer).Encode(conf); err != nil {
		log.Printf("Couldn't encode config: %v\n", err)
		return
	}
	if err := os.WriteFile(f, buffer.Bytes(), 0644); err != nil {
		log.Printf("Couldn't write config file: %v\n", err)
	}
}

var (
	saveMu sync.Mutex
	// generation of the last snapshot taken and the last one written
	saveGen, writtenGen uint64
	saves               sync.WaitGroup
)

// saveConfig writes a copy of the config in the background. Writes are
// serialized and a snapshot older than the last one written is dropped.
func saveConfig(conf *config) {
	c := *conf
	c.Preferences = make(map[string]bool, len(conf.Preferences))
	for k, v := range conf.Preferences {
		c.Preferences[k] = v
	}
	c.Masters = append([]masterConfig(nil), conf.Masters...)

	saveMu.Lock()
	saveGen++
	gen := saveGen
	saveMu.Unlock()

	saves.Add(1)
	go func() {
		defer saves.Done()
		saveMu.Lock()
		defer saveMu.Unlock()
		if gen < writtenGen {
			return
		}
		writtenGen = gen
		writeConfig(&c)
	}()
}

// waitSaves blocks until the background writes are done.
func waitSaves() {
	saves.Wait()
}

// prefs stores the tool's preferences in the config file.
type prefs struct {
	conf *config
}

func (p prefs) Bool(key string) (bool, bool) {
	v, ok := p.conf.Preferences[key]
	return v, ok
}

func (p prefs) SetBool(key string, value bool) {
	if p.conf.Preferences == nil {
		p.conf.Preferences = make(map[string]bool)
	}
	p.conf.Preferences[key] = value
	saveConfig(p.conf)
}

func configDir() string {
	return filepath.Join(xdgOrFallback("XDG_CONFIG_HOME", filepath.Join(os.Getenv("HOME"), ".config")), "dragkern")
}

func exists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}

func xdgOrFallback(xdg string, fallback string) string {
	dir := os.Getenv(xdg)
	if dir != "" {
		if ok, err := exists(dir); ok && err == nil {
			log.Printf("Resolved $%s to '%s'\n", xdg, dir)
			return dir
		}

	}

	log.Printf("Couldn't resolve $%s falling back to '%s'\n", xdg, fallback)
	return fallback
}
