package main

import (
	"context"
	"runtime"
	"strings"

	"github.com/NickyBoy89/java2cpp/model"
	"github.com/NickyBoy89/java2cpp/symbol"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Options controls how a batch of classes is translated
type Options struct {
	// Maximum number of classes translated at once, 0 for GOMAXPROCS
	Jobs int
	// Indentation of a single level, defaults to a tab
	Indent string
	// Headers included by every class, defaults to <math.h> and <string.h>
	Prelude []string
	// Overrides of the C++ spelling of Java types
	Types map[string]string
}

// Result holds every class that was translated, in source order, along with
// the failures of every class that was not
type Result struct {
	Units  []*ClassUnit
	Errors model.ErrorList
}

// Translate translates a batch of classes. The lookup table is built from the
// whole batch before any class is translated, so bases may be declared in any
// order. A failing class never prevents its siblings from being translated; the
// returned error is only set if the context was cancelled
func Translate(ctx context.Context, classes []*model.ClassDecl, opts Options) (*Result, error) {
	table, errs := symbol.NewTable(classes)
	emitter := NewEmitter(table, opts)

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	log.WithFields(log.Fields{
		"classes":    table.Names(),
		"duplicates": len(errs),
		"jobs":       jobs,
	}).Debug("Translating batch")

	// Each goroutine only writes to its own slot
	units := make([]*ClassUnit, len(classes))
	failures := make([]*model.Error, len(classes))
	duplicate := make(map[*model.ClassDecl]bool, len(errs))
	for _, class := range classes {
		if table.FindClass(class.Name()) != class {
			duplicate[class] = true
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, min(jobs, len(classes))))

	for i, class := range classes {
		if duplicate[class] {
			continue
		}
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			unit, err := emitter.EmitClass(class)
			if err != nil {
				failures[i] = asClassError(class, err)
				log.WithFields(log.Fields{
					"class": class.Name(),
					"kind":  failures[i].Kind,
				}).Debug("Class failed to translate")
				return nil
			}
			units[i] = unit
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := &Result{Errors: errs}
	for i := range classes {
		if units[i] != nil {
			result.Units = append(result.Units, units[i])
		}
		if failures[i] != nil {
			result.Errors = append(result.Errors, failures[i])
		}
	}
	return result, nil
}

func asClassError(class *model.ClassDecl, err error) *model.Error {
	if classErr, ok := err.(*model.Error); ok {
		return classErr
	}
	return &model.Error{Kind: model.UnsupportedSyntax, Class: class.Name(), Pos: class.Pos(), Msg: err.Error()}
}

// Includes merges the headers of every unit, deduplicated and sorted
func (r *Result) Includes() []string {
	set := includeSet{}
	for _, unit := range r.Units {
		for _, header := range unit.Includes {
			set.add(header)
		}
	}
	return set.sorted()
}

// Header linearizes the result into the text of a single C++ header: the
// includes first, then every class separated by a blank line
func (r *Result) Header() string {
	var b strings.Builder
	for _, header := range r.Includes() {
		b.WriteString("#include " + header + "\n")
	}
	for _, unit := range r.Units {
		b.WriteString("\n")
		b.WriteString(unit.Text)
	}
	return b.String()
}
