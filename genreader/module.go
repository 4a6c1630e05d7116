package genreader

import "github.com/hepsim/colreco/modpipe"

// readerBufferSize bounds the decode-ahead channel between the reader
// goroutine and the pipeline, decoupling input I/O latency from module
// processing without letting the reader race arbitrarily far ahead.
const readerBufferSize = 4

// eventResult carries one decoded record, or the error that prevented
// decoding it, across the reader goroutine's channel.
type eventResult struct {
	event *Event
	err   error
}

// Module is the pipeline's ingestion step: it owns a Reader and, once per
// Process call, decodes the next generator event into the four arrays
// spec §6 says the framework is handed pre-populated (allParticles,
// stableParticles, partons, LHEParticles). Every other module imports one
// or more of these by name.
//
// A single reader goroutine decodes records off Reader and pushes them on
// a bounded channel, matching the teacher's sendEventsToWorkers/WorkerData
// decoupling of I/O latency from processing (workers.go); unlike the
// teacher's worker pool this has exactly one consumer, preserving spec §5's
// sequential-across-events guarantee.
type Module struct {
	name   string
	Reader Reader

	results chan eventResult

	allParticles    *modpipe.Array
	stableParticles *modpipe.Array
	partons         *modpipe.Array
	lheParticles    *modpipe.Array

	// Done is set once the reader goroutine reports exhaustion, so the
	// run loop knows to stop without treating end-of-input as an error.
	Done bool
	// Header is the most recently decoded event's header scalars.
	Header Header
}

func New(name string, reader Reader) *Module {
	return &Module{name: name, Reader: reader}
}

func (m *Module) Name() string { return m.name }

func (m *Module) Init(ctx *modpipe.Context) error {
	all, err := ctx.Registry.ExportArray(m.name, "allParticles")
	if err != nil {
		return err
	}
	m.allParticles = all

	stable, err := ctx.Registry.ExportArray(m.name, "stableParticles")
	if err != nil {
		return err
	}
	m.stableParticles = stable

	partons, err := ctx.Registry.ExportArray(m.name, "partons")
	if err != nil {
		return err
	}
	m.partons = partons

	lhe, err := ctx.Registry.ExportArray(m.name, "LHEParticles")
	if err != nil {
		return err
	}
	m.lheParticles = lhe

	m.startReading()
	return nil
}

// startReading launches the single producer goroutine. It exits on its own
// once Reader.Next reports exhaustion, closing the channel so Process can
// tell "no more events" apart from "nothing decoded yet".
func (m *Module) startReading() {
	m.results = make(chan eventResult, readerBufferSize)
	go func() {
		defer close(m.results)
		for {
			event, err, ok := m.Reader.Next()
			if !ok {
				return
			}
			m.results <- eventResult{event: event, err: err}
		}
	}()
}

func (m *Module) Finish(ctx *modpipe.Context) error { return m.Reader.Close() }

// Process consumes exactly one decoded event off the reader goroutine's
// channel and refills the four exported arrays. A malformed record
// surfaces as an ExternalError; the run loop is responsible for counting
// it and moving on to the next event.
func (m *Module) Process(ctx *modpipe.Context) error {
	m.allParticles.Reset()
	m.stableParticles.Reset()
	m.partons.Reset()
	m.lheParticles.Reset()

	res, open := <-m.results
	if !open {
		m.Done = true
		return nil
	}
	if res.err != nil {
		return &modpipe.ExternalError{Module: m.name, Err: res.err}
	}

	event := res.event
	m.Header = event.Header
	for _, c := range ToAllParticles(ctx.Pool, event.AllParticles) {
		m.allParticles.Append(c)
	}
	for _, c := range ToAllParticles(ctx.Pool, event.StableParticles) {
		m.stableParticles.Append(c)
	}
	for _, c := range ToAllParticles(ctx.Pool, event.Partons) {
		m.partons.Append(c)
	}
	for _, c := range ToAllParticles(ctx.Pool, event.LHEParticles) {
		m.lheParticles.Append(c)
	}
	return nil
}
