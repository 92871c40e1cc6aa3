package config

import (
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	log "github.com/sirupsen/logrus"
)

const DefaultPath = "./config/application.yaml"

type Application struct {
	Listen   string  `koanf:"listen"`
	Timezone string  `koanf:"timezone"`
	Storage  Storage `koanf:"storage"`
}

type Storage struct {
	// Driver is one of bolt, sqlite, postgres or memory.
	Driver string   `koanf:"driver"`
	Key    string   `koanf:"key"`
	Bolt   Bolt     `koanf:"bolt"`
	Sqlite Sqlite   `koanf:"sqlite"`
	DB     Database `koanf:"db"`
}

type Bolt struct {
	Path   string `koanf:"path"`
	Bucket string `koanf:"bucket"`
}

type Sqlite struct {
	Path string `koanf:"path"`
}

type Database struct {
	Host   string `koanf:"host"`
	Port   int    `koanf:"port"`
	User   string `koanf:"user"`
	Pass   string `koanf:"pass"`
	Name   string `koanf:"name"`
	Schema string `koanf:"schema"`
}

func Defaults() Application {
	return Application{
		Listen:   ":8181",
		Timezone: "Local",
		Storage: Storage{
			Driver: "bolt",
			Key:    "events",
			Bolt: Bolt{
				Path:   "eventcal.db",
				Bucket: "localStorage",
			},
			Sqlite: Sqlite{
				Path: "eventcal.sqlite",
			},
			DB: Database{
				Host:   "localhost",
				Port:   5432,
				User:   "eventcal",
				Pass:   "",
				Name:   "eventcal",
				Schema: "eventcal",
			},
		},
	}
}

// Load merges defaults, the YAML file at path (if present) and EVENTCAL_*
// environment variables, in that order.
func Load(path string) (Application, error) {
	var k = koanf.New(".")

	err := k.Load(structs.Provider(Defaults(), "koanf"), nil)
	if err != nil {
		log.Errorf("error loading config from structs: %v", err)
		return Application{}, err
	}

	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		if os.IsNotExist(err) {
			log.Infof("Config file not found at %s, using defaults and environment variables", path)
		} else {
			log.Errorf("error loading config from YAML: %v", err)
			return Application{}, err
		}
	} else {
		log.Infof("Loaded configuration from file: %s", path)
	}

	err = k.Load(env.Provider(".", env.Opt{
		Prefix: "EVENTCAL_",
		TransformFunc: func(k, v string) (string, any) {
			k = strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(k, "EVENTCAL_")), "_", ".")
			return k, v
		},
	}), nil)
	if err != nil {
		log.Errorf("error loading config from envs: %v", err)
		return Application{}, err
	}

	var app Application
	if err := k.Unmarshal("", &app); err != nil {
		return Application{}, err
	}

	return app, nil
}
