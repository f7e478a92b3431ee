package main

import (
	"fmt"
	"net/http"
	"time"
)

type target struct {
	Endpoint string
	Method   string
	Path     string
	Weight   int
	Body     func(*runOptions) ([]byte, error)
}

type profile struct {
	Name           string
	VUs            int
	Duration       time.Duration
	DefaultP99MS   int
	RequiresWrites bool
	Targets        []target
}

func builtinProfile(name string) (profile, error) {
	switch name {
	case "registry_read":
		return profile{
			Name:         "registry_read",
			VUs:          8,
			Duration:     60 * time.Second,
			DefaultP99MS: 300,
			Targets:      readTargets(),
		}, nil
	case "registry_read_heavy":
		return profile{
			Name:         "registry_read_heavy",
			VUs:          32,
			Duration:     120 * time.Second,
			DefaultP99MS: 800,
			Targets:      readTargets(),
		}, nil
	case "registry_mix_read_write":
		return profile{
			Name:           "registry_mix_read_write",
			VUs:            16,
			Duration:       90 * time.Second,
			DefaultP99MS:   500,
			RequiresWrites: true,
			Targets: append(readTargets(), target{
				Endpoint: "POST /registry/api/entities",
				Method:   http.MethodPost,
				Path:     "/registry/api/entities",
				Weight:   1,
				Body:     buildCreateEntityBody,
			}),
		}, nil
	default:
		return profile{}, fmt.Errorf("unknown profile %q (expected registry_read|registry_read_heavy|registry_mix_read_write)", name)
	}
}

func readTargets() []target {
	return []target{
		{Endpoint: "GET /registry/api/hierarchy", Method: http.MethodGet, Path: "/registry/api/hierarchy", Weight: 3},
		{Endpoint: "GET /registry/api/entities", Method: http.MethodGet, Path: "/registry/api/entities", Weight: 3},
		{Endpoint: "GET /registry/api/dashboard", Method: http.MethodGet, Path: "/registry/api/dashboard", Weight: 2},
		{Endpoint: "GET /registry/api/reports/entity-summary", Method: http.MethodGet, Path: "/registry/api/reports/entity-summary", Weight: 1},
		{Endpoint: "GET /registry/api/reports/mapping-summary", Method: http.MethodGet, Path: "/registry/api/reports/mapping-summary", Weight: 1},
	}
}
