// Package report describes AWS resources as text trees.
//
// Each describer renders one kind of resource under its own heading, e.g.
//
//	Subnets:
//	├──sn-01 : subnet-01 : eu-west-2a : 10.0.1.0/24
//	│  └──Instances:
//	│     └──i-01 : instance-01 : ami-1234 : t2.micro : running : 10.0.1.5
//	│        └──SecurityGroups:
//	│           └──sg-01
//	└──sn-02 : subnet-02 : eu-west-2b : 10.0.2.0/24
//
// Describers take the ancestry path of their heading, so they can be rendered
// in place or, as [VPC] does, as independent roots that are grafted under a
// common heading afterwards.
//
// A resource missing its identifier aborts the report with an
// INVALID_RESOURCE error.
package report

import (
	"cmp"
	"net/netip"
	"strings"

	"github.com/matzehuels/vpctree/pkg/errors"
	"github.com/matzehuels/vpctree/pkg/tree"
)

// Headings of the top-level sections.
const (
	HeadingVPCs              = "VPCs:"
	HeadingSubnets           = "Subnets:"
	HeadingSecurityGroups    = "Security Groups:"
	HeadingLoadBalancers     = "Load Balancers:"
	HeadingTargetGroups      = "Target Groups:"
	HeadingAutoScalingGroups = "Auto Scaling Groups:"
)

// section renders one child block of an item at p.
type section func(p tree.Path) ([]string, error)

// children renders the non-nil sections below path; the last one present is
// closed with an elbow.
func children(path tree.Path, sections ...section) ([]string, error) {
	present := make([]section, 0, len(sections))
	for _, s := range sections {
		if s != nil {
			present = append(present, s)
		}
	}

	var lines []string
	for i, s := range present {
		out, err := s(path.Child(i == len(present)-1))
		if err != nil {
			return nil, err
		}
		lines = append(lines, out...)
	}
	return lines, nil
}

// leaves is a section listing items, or nil when there are none.
func leaves(heading string, items []string) section {
	if len(items) == 0 {
		return nil
	}
	return func(p tree.Path) ([]string, error) {
		return tree.Leaves(p, heading, items), nil
	}
}

// node is a section holding a single line.
func node(content string) section {
	return func(p tree.Path) ([]string, error) {
		return tree.Node(p, content), nil
	}
}

// join joins the non-empty fields with " : ".
func join(fields ...string) string {
	kept := make([]string, 0, len(fields))
	for _, f := range fields {
		if f != "" {
			kept = append(kept, f)
		}
	}
	return strings.Join(kept, " : ")
}

func missing(kind, field string) error {
	return errors.New(errors.ErrCodeInvalidResource, "%s without %s", kind, field)
}

// compareCIDR orders CIDR blocks by network address, then prefix length.
// Blocks that do not parse sort after those that do, lexically.
func compareCIDR(a, b string) int {
	pa, errA := netip.ParsePrefix(a)
	pb, errB := netip.ParsePrefix(b)
	switch {
	case errA == nil && errB == nil:
		if c := pa.Addr().Compare(pb.Addr()); c != 0 {
			return c
		}
		return cmp.Compare(pa.Bits(), pb.Bits())
	case errA == nil:
		return -1
	case errB == nil:
		return 1
	}
	return strings.Compare(a, b)
}

// compareIP orders addresses numerically, unparsable ones last.
func compareIP(a, b string) int {
	ia, errA := netip.ParseAddr(a)
	ib, errB := netip.ParseAddr(b)
	switch {
	case errA == nil && errB == nil:
		return ia.Compare(ib)
	case errA == nil:
		return -1
	case errB == nil:
		return 1
	}
	return strings.Compare(a, b)
}
