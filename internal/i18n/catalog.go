// Package i18n loads the localized UI strings used for message digests.
package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/BurntSushi/toml"
	"golang.org/x/text/language"
)

//go:embed locales/*.toml
var localesFS embed.FS

// Catalog is a flat key -> string table for one locale.
type Catalog struct {
	Tag     language.Tag
	strings map[string]string
}

// Resolve returns the string for key. A missing key resolves to the key itself
// so a gap in a translation shows up in the UI instead of an empty preview.
func (c *Catalog) Resolve(key string) string {
	if c == nil {
		return key
	}
	if s, ok := c.strings[key]; ok {
		return s
	}
	return key
}

// Len returns the number of strings in the catalog.
func (c *Catalog) Len() int {
	return len(c.strings)
}

// Available lists the locales bundled with the binary.
func Available() ([]language.Tag, error) {
	entries, err := fs.ReadDir(localesFS, "locales")
	if err != nil {
		return nil, err
	}
	var tags []language.Tag
	for _, e := range entries {
		name := strings.TrimSuffix(e.Name(), path.Ext(e.Name()))
		tag, err := language.Parse(name)
		if err != nil {
			return nil, fmt.Errorf("locale file %q: %w", e.Name(), err)
		}
		tags = append(tags, tag)
	}
	return tags, nil
}

// Load picks the bundled catalog that best matches locale (a BCP 47 tag such
// as "zh-CN" or "en-US"), falling back to English.
func Load(locale string) (*Catalog, error) {
	tags, err := Available()
	if err != nil {
		return nil, err
	}
	// English first so it is the matcher's fallback.
	ordered := []language.Tag{language.English}
	for _, t := range tags {
		if t != language.English {
			ordered = append(ordered, t)
		}
	}

	matcher := language.NewMatcher(ordered)
	desired, _, err := language.ParseAcceptLanguage(locale)
	if err != nil || len(desired) == 0 {
		desired = []language.Tag{language.English}
	}
	_, idx, _ := matcher.Match(desired...)
	return loadTag(ordered[idx])
}

func loadTag(tag language.Tag) (*Catalog, error) {
	data, err := localesFS.ReadFile(path.Join("locales", tag.String()+".toml"))
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", tag, err)
	}
	return Parse(tag, string(data))
}

// Parse builds a catalog from TOML text of string keys.
func Parse(tag language.Tag, data string) (*Catalog, error) {
	strs := make(map[string]string)
	if _, err := toml.Decode(data, &strs); err != nil {
		return nil, fmt.Errorf("decode catalog %s: %w", tag, err)
	}
	return &Catalog{Tag: tag, strings: strs}, nil
}
