// Package template reads test templates and builds sequence generators from them.
//
// A template is a YAML document with one root block:
//
//	name: alu-mix
//	block:
//	  combinator: product
//	  compositor: overlapping
//	  permutator: trivial
//	  percentage: 50
//	  items:
//	    - call: add
//	      operands: [[r1, r2], [r3, r4]]
//	    - sequences: [[nop], [nop, nop]]
//	    - block: { compositor: rotation, items: [...] }
//
// Every item of a block is exactly one of a call, a list of alternative sequences or a nested block.
package template

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.llib.dev/frameless/pkg/errorkit"
	"gopkg.in/yaml.v3"

	"go.llib.dev/seqgen/pkg/combinator"
	"go.llib.dev/seqgen/pkg/compositor"
	"go.llib.dev/seqgen/pkg/permutator"
)

const ErrInvalidTemplate errorkit.Error = "invalid template"

type Template struct {
	Name  string `yaml:"name" validate:"required"`
	Block Block  `yaml:"block"`
}

// Block configures one generator.
// Empty strategy names fall back to the generator defaults.
type Block struct {
	Combinator string `yaml:"combinator,omitempty" validate:"omitempty,combinator"`
	Compositor string `yaml:"compositor,omitempty" validate:"omitempty,compositor"`
	Permutator string `yaml:"permutator,omitempty" validate:"omitempty,permutator"`
	Percentage *int   `yaml:"percentage,omitempty" validate:"omitempty,gte=0,lte=100"`
	Items      []Item `yaml:"items" validate:"required,min=1,dive"`
}

type Item struct {
	// Call is an instruction name, rendered once for every combination of its operands.
	Call string `yaml:"call,omitempty"`
	// Operands lists the alternatives of each operand slot.
	Operands [][]string `yaml:"operands,omitempty" validate:"dive,min=1"`
	// Sequences are explicit alternative sub-sequences.
	Sequences [][]string `yaml:"sequences,omitempty"`
	Block     *Block     `yaml:"block,omitempty"`
}

// Render formats one instruction call, like "add r1, r3".
func Render(call string, operands []string) string {
	if len(operands) == 0 {
		return call
	}
	return call + " " + strings.Join(operands, ", ")
}

var validate = newValidate()

func newValidate() *validator.Validate {
	v := validator.New()
	strategy := func(parse func(string) error) validator.Func {
		return func(fl validator.FieldLevel) bool { return parse(fl.Field().String()) == nil }
	}
	err := errorkit.Merge(
		v.RegisterValidation("combinator", strategy(func(name string) error {
			_, err := combinator.ParseStrategy(name)
			return err
		})),
		v.RegisterValidation("compositor", strategy(func(name string) error {
			_, err := compositor.ParseStrategy(name)
			return err
		})),
		v.RegisterValidation("permutator", strategy(func(name string) error {
			_, err := permutator.ParseStrategy(name)
			return err
		})),
	)
	if err != nil {
		panic(err)
	}
	v.RegisterStructValidation(validateItem, Item{})
	return v
}

func validateItem(sl validator.StructLevel) {
	item := sl.Current().Interface().(Item)
	var kinds int
	if item.Call != "" {
		kinds++
	}
	if len(item.Sequences) > 0 {
		kinds++
	}
	if item.Block != nil {
		kinds++
	}
	if kinds != 1 {
		sl.ReportError(item.Call, "Call", "call", "call|sequences|block", "")
	}
	if item.Call == "" && len(item.Operands) > 0 {
		sl.ReportError(item.Operands, "Operands", "operands", "required_with_call", "")
	}
}

// Validate reports the first problems of the template as an ErrInvalidTemplate.
func (t Template) Validate() error {
	if err := validate.Struct(t); err != nil {
		return ErrInvalidTemplate.Wrap(err)
	}
	return nil
}

// Load decodes and validates a template.
// Unknown fields are rejected.
func Load(r io.Reader) (Template, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var t Template
	if err := dec.Decode(&t); err != nil {
		if err == io.EOF {
			return Template{}, ErrInvalidTemplate.F("empty document")
		}
		return Template{}, ErrInvalidTemplate.Wrap(err)
	}
	if err := t.Validate(); err != nil {
		return Template{}, err
	}
	return t, nil
}

func LoadFile(path string) (Template, error) {
	f, err := os.Open(path)
	if err != nil {
		return Template{}, err
	}
	defer f.Close()
	t, err := Load(f)
	if err != nil {
		return Template{}, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}
