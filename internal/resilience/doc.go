// Package resilience holds the fault tolerance patterns used around outbound
// fetches: circuit breakers for page and feed hosts, and retry with
// exponential backoff for transient network failures.
//
//	cb := circuitbreaker.New(circuitbreaker.ContentFetchConfig())
//	body, err := cb.Execute(func() (interface{}, error) {
//	    return fetchPage(url)
//	})
//
//	err := retry.WithBackoff(ctx, retry.FeedFetchConfig(), func() error {
//	    return pollFeed(feedURL)
//	})
package resilience
