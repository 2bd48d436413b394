package event

// SendEventJob carries one message through the job queue to the publisher.
type SendEventJob struct {
	EventMessage Message
	Publisher    Publisher
}

func (job *SendEventJob) Execute() {
	if err := job.Publisher.TriggerEvent(job.EventMessage); err != nil {
		return
	}
}
