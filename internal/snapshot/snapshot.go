// Copyright 2025 Florian Zenker (flo@znkr.io)
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package snapshot reads snapshots of collections from files. A snapshot is either a flat list of
// items or a list of sections that contain items.
package snapshot

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
	"znkr.io/listdiff"
)

// Item is an element of a snapshot. Items with an empty ID have no identity.
type Item struct {
	ID      string `toml:"id" yaml:"id"`
	Content string `toml:"content,omitempty" yaml:"content,omitempty"`
}

func (it Item) DiffIdentity() (string, bool) { return it.ID, it.ID != "" }

func (it Item) IsContentEqual(other Item) bool { return it.Content == other.Content }

// Section is a group of items.
type Section struct {
	ID    string `toml:"id" yaml:"id"`
	Items []Item `toml:"items" yaml:"items"`
}

// Snapshot is a collection of items, either flat or grouped into sections. Only one of Items and
// Sections is set.
type Snapshot struct {
	Items    []Item    `toml:"items,omitempty" yaml:"items,omitempty"`
	Sections []Section `toml:"sections,omitempty" yaml:"sections,omitempty"`
}

// Sectioned reports whether the snapshot groups its items into sections.
func (s *Snapshot) Sectioned() bool { return len(s.Sections) > 0 }

// ListSections returns the sections in the form expected by [listdiff.DiffSections].
func (s *Snapshot) ListSections() []listdiff.Section[string, Item] {
	out := make([]listdiff.Section[string, Item], len(s.Sections))
	for i, sec := range s.Sections {
		out[i] = listdiff.Section[string, Item]{ID: sec.ID, Items: sec.Items}
	}
	return out
}

// Format is the encoding of a snapshot file.
type Format int

const (
	Text Format = iota // One item per line, see [Parse]
	TOML
	YAML
)

// FormatFromPath determines the format of a file from its extension.
func FormatFromPath(path string) (Format, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".txt", "":
		return Text, nil
	case ".toml":
		return TOML, nil
	case ".yaml", ".yml":
		return YAML, nil
	default:
		return 0, fmt.Errorf("unknown snapshot format %q", ext)
	}
}

// Load reads a snapshot from a file. The format is determined from the file extension.
func Load(path string) (*Snapshot, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}
	s, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Parse decodes a snapshot.
//
// The text format has one item per line. A line consists of the item ID, optionally followed by
// a space and the content of the item. An ID of "_" denotes an item without identity. A line
// starting with "#" begins a new section, the rest of the line is the ID of the section. Empty
// lines are ignored.
func Parse(data []byte, format Format) (*Snapshot, error) {
	var s Snapshot
	switch format {
	case Text:
		if err := parseText(data, &s); err != nil {
			return nil, err
		}
	case TOML:
		if err := toml.Unmarshal(data, &s); err != nil {
			return nil, fmt.Errorf("failed to parse TOML snapshot: %w", err)
		}
	case YAML:
		if err := yaml.Unmarshal(data, &s); err != nil {
			return nil, fmt.Errorf("failed to parse YAML snapshot: %w", err)
		}
	default:
		panic(fmt.Sprintf("unknown format: %v", format))
	}
	if err := s.validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

var errMixed = errors.New("snapshot has both items and sections")

func (s *Snapshot) validate() error {
	if len(s.Items) > 0 && len(s.Sections) > 0 {
		return errMixed
	}
	for i, sec := range s.Sections {
		if sec.ID == "" {
			return fmt.Errorf("section %d has no id", i)
		}
	}
	return nil
}

func parseText(data []byte, s *Snapshot) error {
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if id, ok := strings.CutPrefix(line, "#"); ok {
			s.Sections = append(s.Sections, Section{ID: strings.TrimSpace(id)})
			continue
		}
		id, content, _ := strings.Cut(line, " ")
		if id == "_" {
			id = ""
		}
		it := Item{ID: id, Content: strings.TrimSpace(content)}
		if n := len(s.Sections); n > 0 {
			s.Sections[n-1].Items = append(s.Sections[n-1].Items, it)
		} else {
			s.Items = append(s.Items, it)
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("failed to read text snapshot: %w", err)
	}
	return nil
}
