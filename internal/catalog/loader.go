package catalog

import (
	"bufio"
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed videos.txt
var defaultVideos []byte

// Default returns the catalog bundled with the binary.
func Default() (*Catalog, error) {
	return ParseText(bytes.NewReader(defaultVideos))
}

// LoadFile reads a catalog from disk. Files ending in .yaml or .yml are
// decoded as YAML, anything else as the pipe separated text format.
func LoadFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ParseYAML(f)
	default:
		return ParseText(f)
	}
}

// ParseText reads lines of the form
//
//	Amazing Cats | amazing_cats_video_id | #cat , #animal
//
// Blank lines are ignored and the tag column may be empty.
func ParseText(r io.Reader) (*Catalog, error) {
	c := New()
	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		parts := strings.Split(line, "|")
		if len(parts) < 2 || len(parts) > 3 {
			return nil, fmt.Errorf("catalog line %d: expected 'title | id | tags'", lineNo)
		}
		title := strings.TrimSpace(parts[0])
		id := strings.TrimSpace(parts[1])
		if title == "" || id == "" {
			return nil, fmt.Errorf("catalog line %d: title and id are required", lineNo)
		}
		var tags []string
		if len(parts) == 3 {
			tags = splitTags(parts[2])
		}
		if err := c.Add(NewVideo(title, id, tags)); err != nil {
			return nil, fmt.Errorf("catalog line %d: %w", lineNo, err)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return c, nil
}

type yamlVideo struct {
	Title string   `yaml:"title"`
	ID    string   `yaml:"id"`
	Tags  []string `yaml:"tags"`
}

// ParseYAML reads a YAML document holding a list of videos under the
// "videos" key.
func ParseYAML(r io.Reader) (*Catalog, error) {
	var doc struct {
		Videos []yamlVideo `yaml:"videos"`
	}
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	c := New()
	for i, v := range doc.Videos {
		if v.Title == "" || v.ID == "" {
			return nil, fmt.Errorf("catalog entry %d: title and id are required", i)
		}
		if err := c.Add(NewVideo(v.Title, v.ID, v.Tags)); err != nil {
			return nil, fmt.Errorf("catalog entry %d: %w", i, err)
		}
	}
	return c, nil
}

func splitTags(raw string) []string {
	var tags []string
	for _, t := range strings.Split(raw, ",") {
		t = strings.TrimSpace(t)
		if t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}
