package resource

import (
	"slices"
	"strings"
)

// SubnetIDs returns the ids of subnets in input order.
func SubnetIDs(subnets []Subnet) []string {
	ids := make([]string, len(subnets))
	for i, s := range subnets {
		ids[i] = s.SubnetID
	}
	return ids
}

// SubnetsInVPC returns the subnets belonging to vpcID.
func SubnetsInVPC(subnets []Subnet, vpcID string) []Subnet {
	return filter(subnets, func(s Subnet) bool { return s.VpcID == vpcID })
}

// InstancesInSubnet returns the instances launched in subnetID.
func InstancesInSubnet(instances []Instance, subnetID string) []Instance {
	return filter(instances, func(i Instance) bool { return i.SubnetID == subnetID })
}

// InstancesInSubnets returns the instances launched in any of subnetIDs.
func InstancesInSubnets(instances []Instance, subnetIDs []string) []Instance {
	return filter(instances, func(i Instance) bool { return slices.Contains(subnetIDs, i.SubnetID) })
}

// SecurityGroupsInVPC returns the security groups belonging to vpcID.
func SecurityGroupsInVPC(groups []SecurityGroup, vpcID string) []SecurityGroup {
	return filter(groups, func(g SecurityGroup) bool { return g.VpcID == vpcID })
}

// LoadBalancersInVPC returns the load balancers belonging to vpcID.
func LoadBalancersInVPC(lbs []LoadBalancer, vpcID string) []LoadBalancer {
	return filter(lbs, func(lb LoadBalancer) bool { return lb.VpcID == vpcID })
}

// LoadBalancerARNs returns the ARNs of lbs in input order.
func LoadBalancerARNs(lbs []LoadBalancer) []string {
	arns := make([]string, len(lbs))
	for i, lb := range lbs {
		arns[i] = lb.LoadBalancerArn
	}
	return arns
}

// TargetGroupsForLoadBalancers returns the target groups attached to at least
// one of the given load balancers.
func TargetGroupsForLoadBalancers(tgs []TargetGroup, lbARNs []string) []TargetGroup {
	return filter(tgs, func(tg TargetGroup) bool {
		return slices.ContainsFunc(tg.LoadBalancerArns, func(arn string) bool {
			return slices.Contains(lbARNs, arn)
		})
	})
}

// AutoScalingGroupsInSubnets returns the groups that span at least one of
// subnetIDs.
func AutoScalingGroupsInSubnets(asgs []AutoScalingGroup, subnetIDs []string) []AutoScalingGroup {
	return filter(asgs, func(asg AutoScalingGroup) bool {
		return slices.ContainsFunc(asg.SubnetIDs(), func(id string) bool {
			return slices.Contains(subnetIDs, id)
		})
	})
}

// SubnetIDs splits VPCZoneIdentifier into subnet ids. Surrounding whitespace
// is trimmed and empty entries are dropped.
func (a AutoScalingGroup) SubnetIDs() []string {
	var ids []string
	for _, id := range strings.Split(a.VPCZoneIdentifier, ",") {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}

func filter[T any](items []T, keep func(T) bool) []T {
	var out []T
	for _, item := range items {
		if keep(item) {
			out = append(out, item)
		}
	}
	return out
}
