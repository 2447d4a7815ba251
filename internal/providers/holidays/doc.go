/*
Package holidays owns the process-wide holiday dataset and its resilience
state.

# Overview

The provider answers "give me the current best holiday set" with a
provenance report. It layers, in order of preference:

 1. a 24-hour in-process cache of the last successful fetch
 2. a live fetch from the external holiday source, guarded by a circuit
    breaker and a bounded retry loop
 3. the stale cache, if any
 4. an embedded static fallback dataset

The provider never fails a caller because the holiday source is down; it
degrades through the layers above and reports the degradation via the
result's Status and Source fields.

# Concurrency

Cache and breaker state are process-wide and guarded internally. Live
fetches are serialized: a caller that blocks behind an in-flight fetch
re-checks the cache once it acquires the fetch lock and reuses the winner's
result instead of fetching again. Status reads never block on a fetch.
*/
package holidays
