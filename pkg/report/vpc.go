package report

import (
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/vpctree/pkg/resource"
	"github.com/matzehuels/vpctree/pkg/source"
	"github.com/matzehuels/vpctree/pkg/tree"
)

// VPC describes a VPC and everything in it. The five sections are rendered
// concurrently as independent trees and grafted under the VPC heading in a
// fixed order: subnets, security groups, load balancers, target groups and
// auto scaling groups.
func VPC(c *source.Collections) ([]string, error) {
	if c.Vpc.VpcID == "" {
		return nil, missing("VPC", "VpcId")
	}

	var sections [5][]string
	var g errgroup.Group
	render := func(i int, fn func() ([]string, error)) {
		g.Go(func() error {
			lines, err := fn()
			sections[i] = lines
			return err
		})
	}
	render(0, func() ([]string, error) { return Subnets(nil, c.Subnets, c.Instances) })
	render(1, func() ([]string, error) { return SecurityGroups(nil, c.SecurityGroups) })
	render(2, func() ([]string, error) { return LoadBalancers(nil, c.LoadBalancers) })
	render(3, func() ([]string, error) { return TargetGroups(nil, c.TargetGroups) })
	render(4, func() ([]string, error) { return AutoScalingGroups(nil, c.AutoScalingGroups) })
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return tree.Assemble(describeVPC(c.Vpc, false), sections[:]...), nil
}

// VPCList lists VPCs in input order; the account default is marked.
func VPCList(vpcs []resource.Vpc) ([]string, error) {
	return tree.Render(nil, HeadingVPCs, vpcs, func(p tree.Path, v resource.Vpc) ([]string, error) {
		if v.VpcID == "" {
			return nil, missing("VPC", "VpcId")
		}
		return tree.Node(p, describeVPC(v, true)), nil
	})
}

// describeVPC returns "id : name : cidr", with ": default" appended for the
// default VPC when markDefault is set.
func describeVPC(v resource.Vpc, markDefault bool) string {
	name, _ := v.Tags.Name()
	line := join(v.VpcID, name, v.CidrBlock)
	if markDefault && v.IsDefault {
		line += " : default"
	}
	return line
}
