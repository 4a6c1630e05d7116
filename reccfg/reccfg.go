// Package reccfg parses the hierarchical YAML pipeline configuration: one
// named block per module, each holding typed scalars and ragged nested
// parameter lists for structured options (spec §6 "a hierarchical key/value
// block per module, with ragged nested lists for structured parameters").
// Grounded on the teacher's LoadConfiguration default-then-unmarshal shape
// (config.go) and on gopkg.in/yaml.v3, the YAML library seen in the
// inference-sim and AleutianLocal example repos.
package reccfg

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Document is the top-level parsed configuration: a run-wide RandomSeed plus
// the ordered module list (declaration order governs pipeline execution
// order per spec §2) and each module's configuration Block.
type Document struct {
	RandomSeed int               `yaml:"random_seed"`
	MaxEvents  int               `yaml:"max_events"`
	Modules    []string          `yaml:"modules"`
	Blocks     map[string]*Block `yaml:"-"`

	RawBlocks map[string]rawBlock `yaml:"blocks"`
}

// Block is one module's configuration: scalar values by key, plus ragged
// nested parameter lists (structured option sets such as EtaPhiBins or
// EfficiencyFormula entries).
type Block struct {
	scalars map[string]interface{}
	params  map[string][][]string
}

// rawBlock is the intermediate shape the YAML document decodes into before
// Load splits it into scalars vs. nested parameter lists.
type rawBlock map[string]interface{}

// EmptyBlock returns a Block with no keys, so GetX calls fall through to
// their caller-supplied defaults. Used when a module is declared in the
// pipeline but has no configuration block of its own.
func EmptyBlock() *Block {
	return &Block{scalars: map[string]interface{}{}, params: map[string][][]string{}}
}

// Load reads and parses filename. Missing keys are not an error here — they
// surface as documented defaults at the GetX call sites, per spec §6.
func Load(filename string) (*Document, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("reccfg: read %s: %w", filename, err)
	}
	return Parse(data)
}

// Parse decodes a YAML document already read into memory.
func Parse(data []byte) (*Document, error) {
	doc := &Document{RandomSeed: 1, MaxEvents: -1}
	if err := yaml.Unmarshal(data, doc); err != nil {
		return nil, fmt.Errorf("reccfg: parse: %w", err)
	}
	doc.Blocks = make(map[string]*Block, len(doc.RawBlocks))
	for name, raw := range doc.RawBlocks {
		doc.Blocks[name] = splitBlock(raw)
	}
	return doc, nil
}

func splitBlock(raw rawBlock) *Block {
	b := EmptyBlock()
	for key, val := range raw {
		switch v := val.(type) {
		case []interface{}:
			b.params[key] = toRaggedStrings(v)
		default:
			b.scalars[key] = v
		}
	}
	return b
}

func toRaggedStrings(rows []interface{}) [][]string {
	out := make([][]string, len(rows))
	for i, row := range rows {
		items, ok := row.([]interface{})
		if !ok {
			out[i] = []string{fmt.Sprint(row)}
			continue
		}
		strs := make([]string, len(items))
		for j, item := range items {
			strs[j] = fmt.Sprint(item)
		}
		out[i] = strs
	}
	return out
}

// Block returns name's configuration block, or an empty one if undeclared.
func (d *Document) Block(name string) *Block {
	if b, ok := d.Blocks[name]; ok {
		return b
	}
	return EmptyBlock()
}
