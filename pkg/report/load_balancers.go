package report

import (
	"github.com/matzehuels/vpctree/pkg/resource"
	"github.com/matzehuels/vpctree/pkg/tree"
)

// LoadBalancers describes load balancers with the zones they serve and the
// security groups attached to them.
func LoadBalancers(path tree.Path, lbs []resource.LoadBalancer) ([]string, error) {
	return tree.Render(path, HeadingLoadBalancers, lbs, loadBalancer)
}

func loadBalancer(p tree.Path, lb resource.LoadBalancer) ([]string, error) {
	if lb.LoadBalancerArn == "" {
		return nil, missing("load balancer", "LoadBalancerArn")
	}
	lines := tree.Node(p, join(lb.LoadBalancerArn, lb.LoadBalancerName))

	zones := make([]string, len(lb.AvailabilityZones))
	for i, az := range lb.AvailabilityZones {
		zones[i] = join(az.ZoneName, az.SubnetID)
	}

	sub, err := children(p,
		leaves("Availability Zones:", zones),
		leaves("Security Groups:", lb.SecurityGroups),
	)
	if err != nil {
		return nil, err
	}
	return append(lines, sub...), nil
}
