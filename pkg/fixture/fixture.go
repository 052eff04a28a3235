// Package fixture registers mockhttp setups from YAML stub files, so a
// test suite can keep its canned exchanges next to its testdata instead
// of building every setup in code.
//
// A stub file holds one stub or a list of stubs:
//
//	- name: get-user
//	  request:
//	    method: GET
//	    path: /users/{id}
//	  response:
//	    status: 200
//	    body: {id: 7, name: alice}
//	  verifiable: true
//
// Load expands glob patterns (** is supported), parses every matching
// file, and registers the stubs in file-name order, so the on-disk
// layout decides match precedence the same way registration order does
// in code.
package fixture

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"

	"github.com/getmockd/mockhttp/pkg/httputil"
	"github.com/getmockd/mockhttp/pkg/match"
	"github.com/getmockd/mockhttp/pkg/mockhttp"
	"github.com/getmockd/mockhttp/pkg/respond"
	"github.com/getmockd/mockhttp/pkg/util"
)

// Load registers the stubs declared by every file matching the given
// glob patterns and returns how many setups were registered. A pattern
// without glob metacharacters names a file that must exist; a glob that
// matches nothing is not an error. Relative bodyFile paths resolve
// against the directory of the stub file naming them.
func Load(t *mockhttp.Transport, patterns ...string) (int, error) {
	total := 0
	for _, pattern := range patterns {
		paths, err := expandGlob(pattern)
		if err != nil {
			return total, fmt.Errorf("expanding pattern %q: %w", pattern, err)
		}
		if len(paths) == 0 && !strings.ContainsAny(pattern, "*?[{") {
			return total, fmt.Errorf("loading %s: %w", pattern, os.ErrNotExist)
		}
		sort.Strings(paths)
		for _, path := range paths {
			n, err := loadFile(t, path)
			total += n
			if err != nil {
				return total, fmt.Errorf("loading %s: %w", path, err)
			}
		}
	}
	return total, nil
}

// expandGlob resolves a pattern to file paths, via doublestar when the
// pattern uses ** and filepath.Glob otherwise.
func expandGlob(pattern string) ([]string, error) {
	if strings.Contains(pattern, "**") {
		return doublestar.FilepathGlob(pattern)
	}
	return filepath.Glob(pattern)
}

// loadFile parses one stub file and registers its stubs in declaration
// order. It returns how many were registered before any error.
func loadFile(t *mockhttp.Transport, path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	if len(data) == 0 {
		return 0, errors.New("file is empty")
	}

	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return 0, fmt.Errorf("parsing YAML: %w", err)
	}

	baseDir := filepath.Dir(path)
	for i := range file.Stubs {
		if err := register(t, &file.Stubs[i], baseDir); err != nil {
			return i, fmt.Errorf("stub %s: %w", file.Stubs[i].label(i), err)
		}
	}
	return len(file.Stubs), nil
}

func (s *Stub) label(i int) string {
	if s.Name != "" {
		return fmt.Sprintf("%q", s.Name)
	}
	return fmt.Sprintf("#%d", i)
}

// register turns one stub into a setup on t.
func register(t *mockhttp.Transport, stub *Stub, baseDir string) error {
	matchers, err := stub.Request.matchers()
	if err != nil {
		return err
	}
	strategy, err := stub.strategy(baseDir)
	if err != nil {
		return err
	}
	if stub.Times < 0 {
		return fmt.Errorf("times must be positive, got %d", stub.Times)
	}

	s := t.When(func(r *mockhttp.RequestSpec) {
		for _, m := range matchers {
			r.Match(m)
		}
	})
	if stub.Name != "" {
		s.Named(stub.Name)
	}
	if stub.Verifiable {
		s.Verifiable()
	}
	if stub.Times > 0 {
		s.Times(stub.Times)
	}
	if strategy != nil {
		s.Respond(strategy)
	}
	return nil
}

// matchers builds the match conditions a request block declares. Header,
// query, and JSONPath conditions register in sorted key order so setup
// descriptions come out deterministic.
func (r *Request) matchers() ([]match.Matcher, error) {
	var ms []match.Matcher
	add := func(m match.Matcher, err error) error {
		if err != nil {
			return err
		}
		ms = append(ms, m)
		return nil
	}

	if r.Method != "" {
		ms = append(ms, match.Method(r.Method))
	}
	if r.Path != "" {
		ms = append(ms, match.Path(r.Path))
	}
	if r.PathRegexp != "" {
		if err := add(match.NewPathRegexp(r.PathRegexp)); err != nil {
			return nil, fmt.Errorf("pathRegexp: %w", err)
		}
	}
	if r.URL != "" {
		ms = append(ms, match.URL(r.URL))
	}
	if r.Host != "" {
		ms = append(ms, match.Host(r.Host))
	}
	for _, key := range sortedKeys(r.Headers) {
		ms = append(ms, match.Header(key, r.Headers[key]))
	}
	for _, key := range sortedKeys(r.Query) {
		ms = append(ms, match.Query(key, r.Query[key]))
	}
	if r.ContentType != "" {
		ms = append(ms, match.ContentType(r.ContentType))
	}
	if r.BodyEquals != "" {
		ms = append(ms, match.BodyEquals(r.BodyEquals))
	}
	if r.BodyContains != "" {
		ms = append(ms, match.BodyContains(r.BodyContains))
	}
	if r.BodyRegexp != "" {
		if err := add(match.NewBodyRegexp(r.BodyRegexp)); err != nil {
			return nil, fmt.Errorf("bodyRegexp: %w", err)
		}
	}
	jsonPaths := make([]string, 0, len(r.JSONPath))
	for path := range r.JSONPath {
		jsonPaths = append(jsonPaths, path)
	}
	sort.Strings(jsonPaths)
	for _, path := range jsonPaths {
		if err := add(match.NewJSONPath(path, r.JSONPath[path])); err != nil {
			return nil, fmt.Errorf("jsonPath %q: %w", path, err)
		}
	}
	return ms, nil
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// strategy builds the response strategy a stub declares, or nil when the
// stub has no response block.
func (s *Stub) strategy(baseDir string) (respond.Strategy, error) {
	r := s.Response
	if r == nil {
		return nil, nil
	}
	if r.Body != "" && r.BodyFile != "" {
		return nil, errors.New("body and bodyFile are mutually exclusive")
	}

	status := r.Status
	if status == 0 {
		status = http.StatusOK
	}

	var opts []respond.Option
	for _, key := range sortedKeys(r.Headers) {
		if http.CanonicalHeaderKey(key) == "Content-Type" {
			opts = append(opts, respond.WithContentType(r.Headers[key]))
			continue
		}
		opts = append(opts, respond.WithHeader(key, r.Headers[key]))
	}

	var strategy respond.Strategy
	switch {
	case r.BodyFile != "":
		cleaned, ok := util.SafeFilePath(r.BodyFile)
		if !ok {
			return nil, fmt.Errorf("unsafe bodyFile path %q", r.BodyFile)
		}
		base, err := filepath.Abs(baseDir)
		if err != nil {
			return nil, fmt.Errorf("resolving stub directory: %w", err)
		}
		strategy = respond.File(status, filepath.Join(base, cleaned), opts...)
	case r.Body != "":
		body := []byte(r.Body)
		strategy = respond.Bytes(status, httputil.DetectContentType(body), body, opts...)
	default:
		strategy = respond.Status(status, opts...)
	}

	if r.DelayMs > 0 {
		strategy = respond.Delay(time.Duration(r.DelayMs)*time.Millisecond, strategy)
	}
	return strategy, nil
}
