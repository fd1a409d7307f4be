package gridpath

import (
	"context"
	"sync"
)

// maxNeighbors is the number of 4-directional moves.
const maxNeighbors = 4

// expandTask is a request from the orchestrator to the workers.
type expandTask struct {
	slot     int
	fromNode int32
	neighbor Coord
	currentG int
	goal     Coord
}

// relaxProposal is the worker's suggestion for updating a path.
type relaxProposal struct {
	slot     int
	fromNode int32
	toNode   Coord
	gScore   int
	hScore   int
}

func propose(task expandTask) relaxProposal {
	return relaxProposal{
		slot:     task.slot,
		fromNode: task.fromNode,
		toNode:   task.neighbor,
		gScore:   task.currentG + 1,
		hScore:   Manhattan(task.neighbor, task.goal),
	}
}

// workerPool fans neighbor expansion out to goroutines. Proposals are handed
// back by slot so the orchestrator can relax them in neighbor order.
type workerPool struct {
	cancel      context.CancelFunc
	tasks       chan expandTask
	proposals   chan relaxProposal
	waitWorkers sync.WaitGroup
}

func startWorkers(parent context.Context, numberOfWorkers int) *workerPool {
	ctx, cancel := context.WithCancel(parent)
	pool := &workerPool{
		cancel:    cancel,
		tasks:     make(chan expandTask, maxNeighbors),
		proposals: make(chan relaxProposal, maxNeighbors),
	}
	for i := 0; i < numberOfWorkers; i++ {
		pool.waitWorkers.Add(1)
		go func() {
			defer pool.waitWorkers.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case task := <-pool.tasks:
					select {
					case pool.proposals <- propose(task):
					case <-ctx.Done():
						return
					}
				}
			}
		}()
	}
	return pool
}

// expand sends every task and collects the proposals into out, indexed by slot.
func (pool *workerPool) expand(ctx context.Context, tasks []expandTask, out *[maxNeighbors]relaxProposal) error {
	for _, task := range tasks {
		pool.tasks <- task
	}
	for range tasks {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case proposal := <-pool.proposals:
			out[proposal.slot] = proposal
		}
	}
	return nil
}

func (pool *workerPool) close() {
	pool.cancel()
	pool.waitWorkers.Wait()
}
