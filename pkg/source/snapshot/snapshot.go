// Package snapshot implements [source.Source] over AWS CLI JSON output.
//
// A snapshot is one JSON document, or a directory of them, holding any of the
// top-level keys written by the describe-* commands:
//
//	aws ec2 describe-vpcs                 > vpcs.json
//	aws ec2 describe-subnets              > subnets.json
//	aws ec2 describe-instances            > instances.json
//	aws ec2 describe-security-groups      > security-groups.json
//	aws elbv2 describe-load-balancers     > load-balancers.json
//	aws elbv2 describe-target-groups      > target-groups.json
//	aws autoscaling describe-auto-scaling-groups > asgs.json
//
// Documents in a directory are merged in lexical file name order. Unknown
// keys are ignored, so the raw command output can be used unedited.
package snapshot

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"hash"
	"io"
	"os"
	"path/filepath"
	"slices"

	"github.com/matzehuels/vpctree/pkg/errors"
	"github.com/matzehuels/vpctree/pkg/resource"
	"github.com/matzehuels/vpctree/pkg/source"
)

// document mirrors the top-level keys of describe-* output.
type document struct {
	Vpcs              []resource.Vpc              `json:"Vpcs"`
	Subnets           []resource.Subnet           `json:"Subnets"`
	Reservations      []resource.Reservation      `json:"Reservations"`
	Instances         []resource.Instance         `json:"Instances"`
	SecurityGroups    []resource.SecurityGroup    `json:"SecurityGroups"`
	LoadBalancers     []resource.LoadBalancer     `json:"LoadBalancers"`
	TargetGroups      []resource.TargetGroup      `json:"TargetGroups"`
	AutoScalingGroups []resource.AutoScalingGroup `json:"AutoScalingGroups"`
}

// Snapshot is an in-memory account snapshot. It is safe for concurrent use
// once loaded.
type Snapshot struct {
	vpcs              []resource.Vpc
	subnets           []resource.Subnet
	instances         []resource.Instance
	securityGroups    []resource.SecurityGroup
	loadBalancers     []resource.LoadBalancer
	targetGroups      []resource.TargetGroup
	autoScalingGroups []resource.AutoScalingGroup

	fingerprint string
}

// Read parses a single document from r.
func Read(r io.Reader) (*Snapshot, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidSnapshot, err, "read snapshot")
	}
	s := &Snapshot{}
	h := sha256.New()
	if err := s.merge(h, "input", data); err != nil {
		return nil, err
	}
	s.fingerprint = hex.EncodeToString(h.Sum(nil))
	return s, nil
}

// Load reads the snapshot at path, which is either a JSON file or a
// directory of *.json files.
func Load(path string) (*Snapshot, error) {
	if err := errors.ValidatePath(path); err != nil {
		return nil, err
	}
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "snapshot %s", path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidSnapshot, err, "snapshot %s", path)
	}

	files := []string{path}
	if info.IsDir() {
		files, err = filepath.Glob(filepath.Join(path, "*.json"))
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "snapshot %s", path)
		}
		if len(files) == 0 {
			return nil, errors.New(errors.ErrCodeInvalidSnapshot, "no *.json documents in %s", path)
		}
		slices.Sort(files)
	}

	s := &Snapshot{}
	h := sha256.New()
	for _, f := range files {
		data, err := os.ReadFile(f)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidSnapshot, err, "read %s", f)
		}
		if err := s.merge(h, f, data); err != nil {
			return nil, err
		}
	}
	s.fingerprint = hex.EncodeToString(h.Sum(nil))
	return s, nil
}

func (s *Snapshot) merge(h hash.Hash, name string, data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return errors.New(errors.ErrCodeInvalidSnapshot, "%s: empty document", name)
	}
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidSnapshot, err, "%s", name)
	}
	h.Write(data)

	s.vpcs = append(s.vpcs, doc.Vpcs...)
	s.subnets = append(s.subnets, doc.Subnets...)
	for _, r := range doc.Reservations {
		s.instances = append(s.instances, r.Instances...)
	}
	s.instances = append(s.instances, doc.Instances...)
	s.securityGroups = append(s.securityGroups, doc.SecurityGroups...)
	s.loadBalancers = append(s.loadBalancers, doc.LoadBalancers...)
	s.targetGroups = append(s.targetGroups, doc.TargetGroups...)
	s.autoScalingGroups = append(s.autoScalingGroups, doc.AutoScalingGroups...)
	return nil
}

// Fingerprint returns the SHA-256 of the raw documents in load order.
func (s *Snapshot) Fingerprint() string { return s.fingerprint }

// VPCs returns every VPC in the snapshot.
func (s *Snapshot) VPCs(ctx context.Context) ([]resource.Vpc, error) {
	return s.vpcs, ctx.Err()
}

// Subnets returns the subnets of vpcID.
func (s *Snapshot) Subnets(ctx context.Context, vpcID string) ([]resource.Subnet, error) {
	return resource.SubnetsInVPC(s.subnets, vpcID), ctx.Err()
}

// Instances returns every instance, flattened out of their reservations.
func (s *Snapshot) Instances(ctx context.Context) ([]resource.Instance, error) {
	return s.instances, ctx.Err()
}

// SecurityGroups returns the security groups of vpcID.
func (s *Snapshot) SecurityGroups(ctx context.Context, vpcID string) ([]resource.SecurityGroup, error) {
	return resource.SecurityGroupsInVPC(s.securityGroups, vpcID), ctx.Err()
}

// LoadBalancers returns every load balancer.
func (s *Snapshot) LoadBalancers(ctx context.Context) ([]resource.LoadBalancer, error) {
	return s.loadBalancers, ctx.Err()
}

// TargetGroups returns the target groups attached to any of the given load
// balancers.
func (s *Snapshot) TargetGroups(ctx context.Context, loadBalancerARNs []string) ([]resource.TargetGroup, error) {
	return resource.TargetGroupsForLoadBalancers(s.targetGroups, loadBalancerARNs), ctx.Err()
}

// AutoScalingGroups returns every auto scaling group.
func (s *Snapshot) AutoScalingGroups(ctx context.Context) ([]resource.AutoScalingGroup, error) {
	return s.autoScalingGroups, ctx.Err()
}

var (
	_ source.Source        = (*Snapshot)(nil)
	_ source.Fingerprinter = (*Snapshot)(nil)
)
