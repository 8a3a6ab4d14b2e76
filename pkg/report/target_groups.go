package report

import (
	"github.com/matzehuels/vpctree/pkg/resource"
	"github.com/matzehuels/vpctree/pkg/tree"
)

// TargetGroups describes target groups and the load balancers that route to
// them.
func TargetGroups(path tree.Path, tgs []resource.TargetGroup) ([]string, error) {
	return tree.Render(path, HeadingTargetGroups, tgs, targetGroup)
}

func targetGroup(p tree.Path, tg resource.TargetGroup) ([]string, error) {
	if tg.TargetGroupArn == "" {
		return nil, missing("target group", "TargetGroupArn")
	}
	lines := tree.Node(p, join(tg.TargetGroupArn, tg.TargetGroupName))

	sub, err := children(p, leaves(HeadingLoadBalancers, tg.LoadBalancerArns))
	if err != nil {
		return nil, err
	}
	return append(lines, sub...), nil
}
