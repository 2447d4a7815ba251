/*
Package resilience provides the circuit breaker and bounded retry loop used
to keep the holiday source from taking the service down with it.

# Circuit breaker

Three-state breaker (Closed, Open, Half-Open) guarding a single unreliable
dependency. The circuit opens after a fixed number of consecutive failures
and short-circuits callers for a cooldown period; the first call past the
cooldown runs a single half-open trial that resolves the circuit to closed
on success or back to open on failure.

	breaker := resilience.New("holiday-source", resilience.Settings{
		FailureThreshold: 3,
		Cooldown:         5 * time.Minute,
		OnStateChange: func(name string, from, to resilience.State) {
			log.Printf("breaker %s: %s -> %s", name, from, to)
		},
	})

	result, err := breaker.Execute(func() (interface{}, error) {
		return client.Fetch()
	})

# Retry

Retry runs an operation through an explicit bounded loop with exponential
backoff and uniform jitter, returning the last error once the attempt
budget is exhausted. There is no hidden control flow: the delay function is
a plain computation and the terminal failure is an ordinary return value.

	err := resilience.Retry(ctx, resilience.DefaultRetryPolicy(), func(ctx context.Context) error {
		return client.Fetch(ctx)
	})

# States

	Closed --[failures]-> Open --[cooldown + call]-> Half-Open --[success]-> Closed
	                                                     |
	                                                 [failure]
	                                                     v
	                                                   Open
*/
package resilience
