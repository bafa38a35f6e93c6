package main

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/filmlab/rolltag"
)

// rollFile is the YAML schema for --roll files. Keeping a roll's base
// metadata in a file makes it reviewable and reusable across re-runs.
//
//	id: 2024-03-portra400-01
//	date: 2024-03-16T10:00:00Z
//	interval: 60s
//	start_frame: 1
//	camera: Nikon FM2
//	lens: Nikkor 50mm f/1.8
//	film: Kodak Portra 400
//	iso: 400
//	gps: "46.519,6.633"
//	notes: Lakeside walk
type rollFile struct {
	ID         string    `yaml:"id"`
	Date       time.Time `yaml:"date"`
	Interval   string    `yaml:"interval"`
	StartFrame int       `yaml:"start_frame"`
	Camera     string    `yaml:"camera"`
	Lens       string    `yaml:"lens"`
	Film       string    `yaml:"film"`
	ISO        int       `yaml:"iso"`
	GPS        string    `yaml:"gps"`
	Notes      string    `yaml:"notes"`
}

func loadRollFile(path string) (rolltag.RollMetadata, error) {
	var roll rolltag.RollMetadata

	data, err := os.ReadFile(path)
	if err != nil {
		return roll, fmt.Errorf("read roll file: %w", err)
	}

	var rf rollFile
	if err := yaml.Unmarshal(data, &rf); err != nil {
		return roll, fmt.Errorf("parse roll file %s: %w", path, err)
	}

	roll.ID = rf.ID
	roll.BaseTime = rf.Date
	roll.StartFrame = rf.StartFrame
	roll.Film = rf.Film
	roll.ISO = rf.ISO
	roll.Notes = rf.Notes

	if rf.Interval != "" {
		d, err := time.ParseDuration(rf.Interval)
		if err != nil {
			return roll, fmt.Errorf("roll file %s: bad interval: %w", path, err)
		}
		roll.Interval = d
	}
	if rf.Camera != "" {
		roll.Make, roll.Model = rolltag.SplitMakeModel(rf.Camera)
	}
	if rf.Lens != "" {
		roll.LensMake, roll.LensModel = rolltag.SplitMakeModel(rf.Lens)
	}
	if rf.GPS != "" {
		pos, err := parseGPS(rf.GPS)
		if err != nil {
			return roll, fmt.Errorf("roll file %s: %w", path, err)
		}
		roll.GPS = pos
	}

	return roll, nil
}
