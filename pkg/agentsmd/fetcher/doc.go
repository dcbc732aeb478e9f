// Package fetcher retrieves AGENTS.md documents published by web properties.
//
// For a base URL the fetcher probes, in order:
//
//	{base}/AGENTS.md
//	{base}/.well-known/agents.md
//
// and parses the first document found. Trailing slashes on the base are
// ignored. A candidate yields nothing when it answers 404 or any other non-2xx
// status, when it is larger than the size ceiling (declared or actual), when
// its request times out, or when HTTPS enforcement is on and a redirect left
// https. If neither candidate yields a document Fetch returns (nil, nil).
//
// With HTTPS enforcement on, a base URL that is not https is rejected with
// ErrInsecureURL before any request is made. Other transport failures are
// returned as *FetchError.
//
//	f := fetcher.New(fetcher.DefaultConfig(), fetcher.WithLogger(logger))
//	result, err := f.Fetch(ctx, "https://example.com")
//	if err != nil {
//	    return err
//	}
//	if result == nil {
//	    // no AGENTS.md published
//	}
package fetcher
