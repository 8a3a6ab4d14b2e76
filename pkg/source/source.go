// Package source defines where vpctree reads AWS resources from.
//
// A [Source] returns fully materialized collections, one method per entity
// kind. [Fetch] resolves one VPC against a Source, loads the independent
// collections concurrently, and narrows them to that VPC so the report
// describers only ever see a consistent, in-memory view.
//
// The only implementation shipped is [snapshot.Snapshot], which reads the
// JSON documents written by the AWS CLI. Live API access is out of scope.
package source

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/vpctree/pkg/errors"
	"github.com/matzehuels/vpctree/pkg/resource"
)

// Source provides AWS resources. Every method returns the full, ordered
// collection; pagination is the implementation's concern.
type Source interface {
	VPCs(ctx context.Context) ([]resource.Vpc, error)
	Subnets(ctx context.Context, vpcID string) ([]resource.Subnet, error)
	Instances(ctx context.Context) ([]resource.Instance, error)
	SecurityGroups(ctx context.Context, vpcID string) ([]resource.SecurityGroup, error)
	LoadBalancers(ctx context.Context) ([]resource.LoadBalancer, error)
	TargetGroups(ctx context.Context, loadBalancerARNs []string) ([]resource.TargetGroup, error)
	AutoScalingGroups(ctx context.Context) ([]resource.AutoScalingGroup, error)
}

// Fingerprinter is implemented by sources whose content can be hashed.
// Equal fingerprints mean equal content, which lets rendered reports be
// cached across runs.
type Fingerprinter interface {
	Fingerprint() string
}

// Collections holds everything rendered for one VPC.
type Collections struct {
	Vpc               resource.Vpc
	Subnets           []resource.Subnet
	Instances         []resource.Instance
	SecurityGroups    []resource.SecurityGroup
	LoadBalancers     []resource.LoadBalancer
	TargetGroups      []resource.TargetGroup
	AutoScalingGroups []resource.AutoScalingGroup
}

// FindVPC returns the VPC with the given id.
func FindVPC(ctx context.Context, src Source, vpcID string) (resource.Vpc, error) {
	vpcs, err := src.VPCs(ctx)
	if err != nil {
		return resource.Vpc{}, err
	}
	for _, v := range vpcs {
		if v.VpcID == vpcID {
			return v, nil
		}
	}
	return resource.Vpc{}, errors.New(errors.ErrCodeVPCNotFound, "VPC %s not found", vpcID)
}

// Fetch loads every collection needed to describe vpcID.
//
// Subnets, instances, security groups, load balancers and auto scaling
// groups are fetched concurrently; target groups follow the load balancers
// they hang off. Instances are kept only when they sit in one of the VPC's
// subnets, and auto scaling groups only when they span one of them.
func Fetch(ctx context.Context, src Source, vpcID string) (*Collections, error) {
	vpc, err := FindVPC(ctx, src, vpcID)
	if err != nil {
		return nil, err
	}

	c := &Collections{Vpc: vpc}
	var instances []resource.Instance
	var asgs []resource.AutoScalingGroup

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		subnets, err := src.Subnets(ctx, vpcID)
		c.Subnets = resource.SubnetsInVPC(subnets, vpcID)
		return err
	})
	g.Go(func() error {
		var err error
		instances, err = src.Instances(ctx)
		return err
	})
	g.Go(func() error {
		groups, err := src.SecurityGroups(ctx, vpcID)
		c.SecurityGroups = resource.SecurityGroupsInVPC(groups, vpcID)
		return err
	})
	g.Go(func() error {
		lbs, err := src.LoadBalancers(ctx)
		if err != nil {
			return err
		}
		c.LoadBalancers = resource.LoadBalancersInVPC(lbs, vpcID)
		if len(c.LoadBalancers) == 0 {
			return nil
		}
		arns := resource.LoadBalancerARNs(c.LoadBalancers)
		tgs, err := src.TargetGroups(ctx, arns)
		c.TargetGroups = resource.TargetGroupsForLoadBalancers(tgs, arns)
		return err
	})
	g.Go(func() error {
		var err error
		asgs, err = src.AutoScalingGroups(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	subnetIDs := resource.SubnetIDs(c.Subnets)
	c.Instances = resource.InstancesInSubnets(instances, subnetIDs)
	c.AutoScalingGroups = resource.AutoScalingGroupsInSubnets(asgs, subnetIDs)
	return c, nil
}
