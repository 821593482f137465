// Package labmatch resolves free-text laboratory test names, in Chinese or
// English, to standardized terminology codes.
//
// A Matcher first looks the normalized query up in a curated mapping table
// and returns every row that matches exactly. Otherwise it ranks the rows of
// the reference terminology table by embedding similarity over their code,
// synonym and preferred term fields. Field vectors are computed once and
// kept in a persistent cache keyed by the source path and model.
//
//	cfg, _ := config.FromEnv()
//	m, err := labmatch.NewMatcher(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer m.Close()
//	results, err := m.Search(ctx, "白蛋白", 5)
package labmatch
