// Package baseline drives the data generation pipeline: a Cartesian product
// of random seeds and accuracy orders is integrated in parallel, and the
// partial results are deterministically reassembled into one dataset sorted
// by sample and accuracy order.
package baseline

import (
	"fmt"
	"runtime"
	"sort"
	"sync"

	"github.com/shiji203/data-driven-discretization-1d/dataset"
	"github.com/shiji203/data-driven-discretization-1d/equations"
	"github.com/shiji203/data-driven-discretization-1d/integrate"
)

// Config is the full pipeline configuration surface.
type Config struct {
	OutputPath          string  `json:"output_path"`
	Equation            string  `json:"equation"`
	EquationParams      string  `json:"equation_params"` // YAML or JSON map for the equation constructor
	NumSamples          int     `json:"num_samples"`
	TimeMax             float64 `json:"time_max"`
	AccuracyOrders      []int   `json:"accuracy_orders"`
	TimeDelta           float64 `json:"time_delta"`
	Warmup              float64 `json:"warmup"`
	IntegrateMethod     string  `json:"integrate_method"`
	ExactFilterInterval float64 `json:"exact_filter_interval"`
	Parallelism         int     `json:"parallelism"` // 0 means NumCPU
}

// Task is one independent unit of work: a (seed, accuracy order) pair. Tasks
// share no mutable state; each constructs its own equation and forcing from
// the seed alone, so re-running a task reproduces its output bit for bit.
type Task struct {
	Seed          int
	AccuracyOrder int
}

// Plan builds the cross product of seeds 0..NumSamples-1 and the requested
// accuracy orders.
func Plan(numSamples int, accuracyOrders []int) (tasks []Task) {
	for seed := 0; seed < numSamples; seed++ {
		for _, order := range accuracyOrders {
			tasks = append(tasks, Task{Seed: seed, AccuracyOrder: order})
		}
	}
	return
}

func (cfg *Config) validate() (p equations.Params, err error) {
	if cfg.NumSamples <= 0 {
		err = fmt.Errorf("num_samples must be positive, got %d", cfg.NumSamples)
		return
	}
	if len(cfg.AccuracyOrders) == 0 {
		err = fmt.Errorf("at least one accuracy order is required")
		return
	}
	if cfg.TimeMax < 0 || cfg.TimeDelta <= 0 {
		err = fmt.Errorf("invalid time grid: time_max=%g time_delta=%g", cfg.TimeMax, cfg.TimeDelta)
		return
	}
	if _, ok := equations.ConservativeTypes[cfg.Equation]; !ok {
		err = fmt.Errorf("unknown conservative equation %q", cfg.Equation)
		return
	}
	if _, err = integrate.Method(cfg.IntegrateMethod); err != nil {
		return
	}
	// equation params fail fast here, before any task is dispatched
	if p, err = equations.ParseParams([]byte(cfg.EquationParams)); err != nil {
		return
	}
	_, err = equations.New(equations.ConservativeTypes, cfg.Equation, p, 0)
	return
}

// Times is the evenly spaced sampling grid [0, TimeMax] at TimeDelta spacing.
func (cfg *Config) Times() (times []float64) {
	// tolerance keeps the endpoint in the grid despite accumulated rounding
	limit := cfg.TimeMax + cfg.TimeDelta*1e-9
	for k := 0; ; k++ {
		t := float64(k) * cfg.TimeDelta
		if t > limit {
			return
		}
		times = append(times, t)
	}
}

// filterInterval enables exact filtering only when the selected equation
// type declares a spectral exact method and a nonzero interval is
// configured. No conservative variant does today, so this normally yields 0.
func (cfg *Config) filterInterval(p equations.Params) (interval float64, err error) {
	if cfg.ExactFilterInterval == 0 {
		return 0, nil
	}
	probe, err := equations.New(equations.ConservativeTypes, cfg.Equation, p, 0)
	if err != nil {
		return
	}
	if probe.ExactMethod() == equations.ExactSpectral {
		interval = cfg.ExactFilterInterval
	}
	return
}

// runTask constructs the task's private equation instance, asserts it really
// is conservative, integrates, and tags the result with its sample and
// accuracy_order coordinates.
func runTask(cfg *Config, p equations.Params, times []float64, filterInterval float64, task Task) (out *dataset.Array, err error) {
	eq, err := equations.New(equations.ConservativeTypes, cfg.Equation, p, task.Seed)
	if err != nil {
		return
	}
	if !eq.Conservative() {
		// registry corruption, not a recoverable input problem
		err = fmt.Errorf("equation %q resolved to a non-conservative type", cfg.Equation)
		return
	}
	result, err := integrate.Baseline(eq, times, cfg.Warmup, task.AccuracyOrder, cfg.IntegrateMethod, filterInterval)
	if err != nil {
		err = fmt.Errorf("task (sample=%d, accuracy_order=%d): %v", task.Seed, task.AccuracyOrder, err)
		return
	}
	if result, err = result.ExpandDims("accuracy_order", float64(task.AccuracyOrder)); err != nil {
		return
	}
	return result.ExpandDims("sample", float64(task.Seed))
}

// Combine reassembles per-task partial results, in whatever order they
// arrived, into one dataset: concatenate per sample along accuracy_order and
// sort, then concatenate across samples and sort. Ordering correctness comes
// from the sorts, never from arrival order.
func Combine(partials []*dataset.Array) (ds *dataset.Array, err error) {
	if len(partials) == 0 {
		err = fmt.Errorf("no partial results to combine")
		return
	}
	bySample := make(map[float64][]*dataset.Array)
	for _, p := range partials {
		key := p.Coords["sample"][0]
		bySample[key] = append(bySample[key], p)
	}
	keys := make([]float64, 0, len(bySample))
	for key := range bySample {
		keys = append(keys, key)
	}
	sort.Float64s(keys)

	combined := make([]*dataset.Array, 0, len(keys))
	for _, key := range keys {
		var c *dataset.Array
		if c, err = dataset.Concat("accuracy_order", bySample[key]...); err != nil {
			return
		}
		if c, err = c.SortBy("accuracy_order"); err != nil {
			return
		}
		combined = append(combined, c)
	}
	if ds, err = dataset.Concat("sample", combined...); err != nil {
		return
	}
	return ds.SortBy("sample")
}

// Generate runs the pipeline and returns the combined dataset.
func Generate(cfg *Config) (ds *dataset.Array, err error) {
	p, err := cfg.validate()
	if err != nil {
		return
	}
	filterInterval, err := cfg.filterInterval(p)
	if err != nil {
		return
	}
	var (
		times   = cfg.Times()
		tasks   = Plan(cfg.NumSamples, cfg.AccuracyOrders)
		workers = cfg.Parallelism
	)
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(tasks) {
		workers = len(tasks)
	}
	fmt.Printf("dispatching %d tasks (%d samples x %v) on %d workers\n",
		len(tasks), cfg.NumSamples, cfg.AccuracyOrders, workers)

	var (
		taskC    = make(chan Task)
		partials = make([]*dataset.Array, 0, len(tasks))
		errs     = make([]error, 0)
		mu       sync.Mutex
		wg       sync.WaitGroup
	)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for task := range taskC {
				out, taskErr := runTask(cfg, p, times, filterInterval, task)
				mu.Lock()
				if taskErr != nil {
					errs = append(errs, taskErr)
				} else {
					partials = append(partials, out)
				}
				mu.Unlock()
			}
		}()
	}
	for _, task := range tasks {
		taskC <- task
	}
	close(taskC)
	wg.Wait()
	if len(errs) != 0 {
		return nil, errs[0]
	}
	return Combine(partials)
}

// Run generates the dataset and persists it to the configured output path.
func Run(cfg *Config) (err error) {
	ds, err := Generate(cfg)
	if err != nil {
		return
	}
	if cfg.OutputPath == "" {
		return fmt.Errorf("output path is required")
	}
	if err = ds.WriteFile(cfg.OutputPath); err != nil {
		return
	}
	fmt.Printf("wrote %v dataset to %s\n", ds.Shape, cfg.OutputPath)
	return
}
