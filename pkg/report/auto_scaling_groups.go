package report

import (
	"fmt"

	"github.com/matzehuels/vpctree/pkg/resource"
	"github.com/matzehuels/vpctree/pkg/tree"
)

// AutoScalingGroups describes auto scaling groups: their size limits, launch
// settings, subnets, instances and load balancing.
func AutoScalingGroups(path tree.Path, asgs []resource.AutoScalingGroup) ([]string, error) {
	return tree.Render(path, HeadingAutoScalingGroups, asgs, autoScalingGroup)
}

func autoScalingGroup(p tree.Path, asg resource.AutoScalingGroup) ([]string, error) {
	if asg.AutoScalingGroupARN == "" {
		return nil, missing("auto scaling group", "AutoScalingGroupARN")
	}
	lines := tree.Node(p, join(asg.AutoScalingGroupARN, asg.AutoScalingGroupName))

	var launchTemplate, mixed, launchConfig section
	if lt := asg.LaunchTemplate; lt != nil {
		launchTemplate = leaves("Launch Template", []string{describeLaunchTemplate(*lt)})
	}
	if asg.LaunchConfigurationName != "" {
		launchConfig = leaves("Launch Configuration", []string{asg.LaunchConfigurationName})
	}
	if mip := asg.MixedInstancesPolicy; mip != nil {
		mixed = leaves("Mixed Instances Policy", []string{
			describeLaunchTemplate(mip.LaunchTemplate.LaunchTemplateSpecification),
		})
	}

	instances := make([]string, len(asg.Instances))
	for i, inst := range asg.Instances {
		instances[i] = inst.InstanceID
	}

	sub, err := children(p,
		node(fmt.Sprintf("MinSize = %d : MaxSize = %d", asg.MinSize, asg.MaxSize)),
		launchTemplate,
		launchConfig,
		mixed,
		leaves("Subnets:", asg.SubnetIDs()),
		leaves("Instances:", instances),
		leaves("Load Balancers:", asg.LoadBalancerNames),
		leaves("Target Groups:", asg.TargetGroupARNs),
	)
	if err != nil {
		return nil, err
	}
	return append(lines, sub...), nil
}

// describeLaunchTemplate returns "id : name : version", skipping empty fields.
func describeLaunchTemplate(lt resource.LaunchTemplateSpecification) string {
	return join(lt.LaunchTemplateID, lt.LaunchTemplateName, lt.Version)
}
