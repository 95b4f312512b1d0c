package project

import (
	"slices"

	"github.com/modu-ai/kickstart/internal/buildtool"
	"github.com/modu-ai/kickstart/pkg/models"
)

// FileChange is the effect of one create operation on one file.
type FileChange = buildtool.FileChange

// Outcome reports a create operation. It is never modified after Execute
// returns it; accessors hand out copies.
type Outcome struct {
	failure     FailureKind
	err         error
	warnings    []string
	state       models.DetectedState
	changes     []FileChange
	directories []string
	dryRun      bool
}

// IsSuccess reports whether the operation completed.
func (o *Outcome) IsSuccess() bool { return o.failure == FailureNone }

// Failure returns the failure kind, FailureNone on success.
func (o *Outcome) Failure() FailureKind { return o.failure }

// Err returns the error that stopped the operation, or nil.
func (o *Outcome) Err() error { return o.err }

// State returns the detected state of the target directory.
func (o *Outcome) State() models.DetectedState { return o.state }

// DryRun reports whether the operation only planned its changes.
func (o *Outcome) DryRun() bool { return o.dryRun }

// Warnings returns the non-fatal messages collected along the way.
func (o *Outcome) Warnings() []string { return slices.Clone(o.warnings) }

// Changes returns every file the operation looked at, in processing order.
func (o *Outcome) Changes() []FileChange { return slices.Clone(o.changes) }

// Directories returns the directories created (or, in a dry run, planned).
func (o *Outcome) Directories() []string { return slices.Clone(o.directories) }

// Created returns the paths of new files.
func (o *Outcome) Created() []string { return o.paths(buildtool.ActionCreated) }

// Updated returns the paths of merged descriptors that changed.
func (o *Outcome) Updated() []string { return o.paths(buildtool.ActionUpdated) }

// Skipped returns the paths left alone because they already existed.
func (o *Outcome) Skipped() []string { return o.paths(buildtool.ActionSkipped) }

// Unchanged returns descriptors that already had everything required.
func (o *Outcome) Unchanged() []string { return o.paths(buildtool.ActionUnchanged) }

func (o *Outcome) paths(a buildtool.Action) []string {
	var out []string
	for _, c := range o.changes {
		if c.Action == a {
			out = append(out, c.Path)
		}
	}
	return out
}

// outcomeBuilder accumulates results during Execute.
type outcomeBuilder struct {
	o Outcome
}

func (b *outcomeBuilder) warn(msgs ...string) {
	b.o.warnings = append(b.o.warnings, msgs...)
}

func (b *outcomeBuilder) record(changes ...FileChange) {
	b.o.changes = append(b.o.changes, changes...)
}

func (b *outcomeBuilder) fail(err error) *Outcome {
	b.o.err = err
	b.o.failure = classify(err)
	return b.build()
}

func (b *outcomeBuilder) build() *Outcome {
	o := b.o
	o.warnings = slices.Clone(b.o.warnings)
	o.changes = slices.Clone(b.o.changes)
	o.directories = slices.Clone(b.o.directories)
	return &o
}
