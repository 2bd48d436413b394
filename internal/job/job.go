package job

import (
	"time"
)

type Job interface {
	Execute()
}

type Queue chan Job

// Dispatcher owns a job queue and hands work to it after an optional delay.
type Dispatcher struct {
	queue Queue
}

func NewDispatcher(buffer int) *Dispatcher {
	return &Dispatcher{
		queue: make(Queue, buffer),
	}
}

func (d *Dispatcher) Dispatch(job Job, delay time.Duration) {
	go func() {
		<-time.After(delay)
		d.queue <- job
	}()
}

func (d *Dispatcher) Jobs() Queue {
	return d.queue
}

type WorkerPool struct {
	workers []Worker
}

func NewWorkerPool(size int, queue Queue) *WorkerPool {
	workers := make([]Worker, size)
	for i := 0; i < size; i++ {
		workers[i] = NewWorker(queue)
	}

	return &WorkerPool{workers}
}

func (p *WorkerPool) Start() {
	for _, worker := range p.workers {
		worker.Start()
	}
}

type Worker struct {
	jobQueue Queue
}

func NewWorker(jobQueue Queue) Worker {
	return Worker{jobQueue}
}

func (w *Worker) Start() {
	go func() {
		for job := range w.jobQueue {
			job.Execute()
		}
	}()
}
