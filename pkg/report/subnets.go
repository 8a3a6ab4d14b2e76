package report

import (
	"slices"

	"github.com/matzehuels/vpctree/pkg/resource"
	"github.com/matzehuels/vpctree/pkg/tree"
)

// Subnets describes subnets ordered by CIDR block. Instances are listed below
// the subnet they were launched in, ordered by private IP address. Both orders
// are numeric, so 10.0.2.0/24 sorts before 10.0.10.0/24.
func Subnets(path tree.Path, subnets []resource.Subnet, instances []resource.Instance) ([]string, error) {
	sorted := slices.Clone(subnets)
	slices.SortStableFunc(sorted, func(a, b resource.Subnet) int {
		return compareCIDR(a.CidrBlock, b.CidrBlock)
	})

	return tree.Render(path, HeadingSubnets, sorted, func(p tree.Path, s resource.Subnet) ([]string, error) {
		return subnet(p, s, instances)
	})
}

func subnet(p tree.Path, s resource.Subnet, all []resource.Instance) ([]string, error) {
	if s.SubnetID == "" {
		return nil, missing("subnet", "SubnetId")
	}
	name, _ := s.Tags.Name()
	lines := tree.Node(p, join(s.SubnetID, name, s.AvailabilityZone, s.CidrBlock))

	instances := slices.Clone(resource.InstancesInSubnet(all, s.SubnetID))
	if len(instances) == 0 {
		return lines, nil
	}
	slices.SortStableFunc(instances, func(a, b resource.Instance) int {
		return compareIP(a.PrivateIPAddress, b.PrivateIPAddress)
	})

	sub, err := tree.Render(p.Child(true), "Instances:", instances, instance)
	if err != nil {
		return nil, err
	}
	return append(lines, sub...), nil
}

func instance(p tree.Path, i resource.Instance) ([]string, error) {
	if i.InstanceID == "" {
		return nil, missing("instance", "InstanceId")
	}
	name, _ := i.Tags.Name()
	lines := tree.Node(p, join(i.InstanceID, name, i.ImageID, i.InstanceType, i.State.Name, i.PrivateIPAddress))

	groups := make([]string, len(i.SecurityGroups))
	for n, g := range i.SecurityGroups {
		groups[n] = g.GroupID
	}
	return append(lines, tree.Leaves(p.Child(true), "SecurityGroups:", groups)...), nil
}
