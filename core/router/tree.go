package router

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/juan-009/authguard/core/handler"
)

// Params holds the path parameters extracted for a matched route, as
// parallel slices so callers needing ordered iteration (rather than
// map[string]string's Param lookups) can walk them directly.
type Params struct {
	Keys   []string
	Values []string
}

// endpoint is a single method's registration at a tree node.
type endpoint[C handler.Context] struct {
	pattern string
	handler handler.HandlerFunc[C]
}

// regexChild matches a path segment against a compiled constraint
// before capturing it under name.
type regexChild[C handler.Context] struct {
	name string
	re   *regexp.Regexp
	node *node[C]
}

// node is one segment position in the routing tree. Children are
// categorized by kind so matching can try them in priority order:
// static, then regex-constrained params, then plain params, then a
// trailing wildcard.
type node[C handler.Context] struct {
	endpoints map[methodTyp]*endpoint[C]
	subroutes Router[C]

	staticChildren map[string]*node[C]
	regexChildren  []*regexChild[C]
	paramChild     *node[C]
	paramName      string
	wildcardChild  *node[C]
}

func (n *node[C]) hasEndpoint() bool {
	return len(n.endpoints) > 0
}

func (n *node[C]) childStatic(seg string) *node[C] {
	if n.staticChildren == nil {
		n.staticChildren = make(map[string]*node[C])
	}
	child, ok := n.staticChildren[seg]
	if !ok {
		child = &node[C]{}
		n.staticChildren[seg] = child
	}
	return child
}

func (n *node[C]) childParam(name string) *node[C] {
	if n.paramChild == nil {
		n.paramChild = &node[C]{}
		n.paramName = name
	}
	return n.paramChild
}

func (n *node[C]) childRegex(name, pattern string, re *regexp.Regexp) *node[C] {
	for _, rc := range n.regexChildren {
		if rc.name == name && rc.re.String() == re.String() {
			return rc.node
		}
	}
	child := &node[C]{}
	n.regexChildren = append(n.regexChildren, &regexChild[C]{name: name, re: re, node: child})
	return child
}

func (n *node[C]) childWildcard() *node[C] {
	if n.wildcardChild == nil {
		n.wildcardChild = &node[C]{}
	}
	return n.wildcardChild
}

// segKind identifies how a single path segment of a pattern was
// parsed.
type segKind int

const (
	segStatic segKind = iota
	segParam
	segWildcard
)

type segSpec struct {
	kind    segKind
	literal string
	name    string
	re      *regexp.Regexp
}

// splitPath turns a URL path into its non-empty segments. "/" and ""
// both yield no segments.
func splitPath(path string) []string {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "/")
}

// parsePattern validates pattern and breaks it into segSpecs, panicking
// on any of the malformed-route cases the tree refuses to register.
func parsePattern(pattern string) []segSpec {
	segments := splitPath(pattern)
	specs := make([]segSpec, 0, len(segments))
	seenParams := make(map[string]bool)

	for i, seg := range segments {
		switch {
		case seg == "*":
			if i != len(segments)-1 {
				panic(fmt.Errorf("%w: '%s'", ErrWildcardPosition, pattern))
			}
			specs = append(specs, segSpec{kind: segWildcard})

		case strings.HasPrefix(seg, "{"):
			if !strings.HasSuffix(seg, "}") {
				panic(fmt.Errorf("%w: '%s'", ErrParamDelimiter, pattern))
			}
			inner := seg[1 : len(seg)-1]
			name := inner
			constraint := ""
			if idx := strings.IndexByte(inner, ':'); idx >= 0 {
				name = inner[:idx]
				constraint = inner[idx+1:]
			}
			if name == "" {
				panic(fmt.Errorf("%w: '%s'", ErrParamDelimiter, pattern))
			}
			if seenParams[name] {
				panic(fmt.Errorf("%w: '%s' in '%s'", ErrDuplicateParam, name, pattern))
			}
			seenParams[name] = true

			spec := segSpec{kind: segParam, name: name}
			if constraint != "" {
				re, err := regexp.Compile("^" + constraint + "$")
				if err != nil {
					panic(fmt.Errorf("%w: %v", ErrInvalidRegexp, err))
				}
				spec.re = re
			}
			specs = append(specs, spec)

		default:
			specs = append(specs, segSpec{kind: segStatic, literal: seg})
		}
	}

	return specs
}

// insertRoute registers fn at pattern for method, creating intermediate
// nodes as needed, and returns the terminal node.
func (n *node[C]) insertRoute(method methodTyp, pattern string, fn handler.HandlerFunc[C]) *node[C] {
	specs := parsePattern(pattern)

	cur := n
	for _, spec := range specs {
		switch spec.kind {
		case segStatic:
			cur = cur.childStatic(spec.literal)
		case segParam:
			if spec.re != nil {
				cur = cur.childRegex(spec.name, spec.re.String(), spec.re)
			} else {
				cur = cur.childParam(spec.name)
			}
		case segWildcard:
			cur = cur.childWildcard()
		}
	}

	if cur.endpoints == nil {
		cur.endpoints = make(map[methodTyp]*endpoint[C])
	}
	ep := &endpoint[C]{pattern: pattern, handler: fn}
	for _, m := range realMethods {
		if method&m != 0 {
			cur.endpoints[m] = ep
		}
	}
	if method&mALL != 0 {
		cur.endpoints[mALL] = ep
	}
	if method&mSTUB != 0 {
		cur.endpoints[mSTUB] = ep
	}

	return cur
}

// matchResult carries the terminal node and captured params back up
// through the recursive descent.
type matchResult[C handler.Context] struct {
	node   *node[C]
	params Params
}

// find walks segments[i:] from n, trying children in static > regex >
// param > wildcard priority, backtracking on dead ends.
func (n *node[C]) find(segments []string, i int) (matchResult[C], bool) {
	if i == len(segments) {
		if n.hasEndpoint() || n.subroutes != nil {
			return matchResult[C]{node: n}, true
		}
		if n.wildcardChild != nil {
			return matchResult[C]{node: n.wildcardChild, params: Params{Keys: []string{"*"}, Values: []string{""}}}, true
		}
		return matchResult[C]{}, false
	}

	seg := segments[i]

	if n.staticChildren != nil {
		if child, ok := n.staticChildren[seg]; ok {
			if res, ok := child.find(segments, i+1); ok {
				return res, true
			}
		}
	}

	for _, rc := range n.regexChildren {
		if !rc.re.MatchString(seg) {
			continue
		}
		if res, ok := rc.node.find(segments, i+1); ok {
			res.params.Keys = append([]string{rc.name}, res.params.Keys...)
			res.params.Values = append([]string{seg}, res.params.Values...)
			return res, true
		}
	}

	if n.paramChild != nil && seg != "" {
		if res, ok := n.paramChild.find(segments, i+1); ok {
			res.params.Keys = append([]string{n.paramName}, res.params.Keys...)
			res.params.Values = append([]string{seg}, res.params.Values...)
			return res, true
		}
	}

	if n.wildcardChild != nil {
		rest := strings.Join(segments[i:], "/")
		return matchResult[C]{node: n.wildcardChild, params: Params{Keys: []string{"*"}, Values: []string{rest}}}, true
	}

	return matchResult[C]{}, false
}

// findRoute resolves method and path to the matched node, its
// endpoints, the handler to invoke for method (falling back to the
// catch-all registration), and the captured path params.
func (n *node[C]) findRoute(method methodTyp, path string) (*node[C], map[methodTyp]*endpoint[C], handler.HandlerFunc[C], Params) {
	segments := splitPath(path)

	res, ok := n.find(segments, 0)
	if !ok {
		return nil, nil, nil, Params{}
	}

	rn := res.node
	var fn handler.HandlerFunc[C]
	if ep, ok := rn.endpoints[method]; ok {
		fn = ep.handler
	} else if ep, ok := rn.endpoints[mALL]; ok {
		fn = ep.handler
	}

	return rn, rn.endpoints, fn, res.params
}

// routes collects every concrete-method registration in the tree for
// introspection; mount stubs (mSTUB/mALL-only mount markers) aren't
// included.
func (n *node[C]) routes() []Route {
	var out []Route
	n.walkRoutes(&out)
	return out
}

func (n *node[C]) walkRoutes(out *[]Route) {
	for _, m := range realMethods {
		if ep, ok := n.endpoints[m]; ok {
			*out = append(*out, Route{Method: reverseMethodMap[m], Pattern: ep.pattern})
		}
	}
	for _, child := range n.staticChildren {
		child.walkRoutes(out)
	}
	for _, rc := range n.regexChildren {
		rc.node.walkRoutes(out)
	}
	if n.paramChild != nil {
		n.paramChild.walkRoutes(out)
	}
	if n.wildcardChild != nil {
		n.wildcardChild.walkRoutes(out)
	}
}
