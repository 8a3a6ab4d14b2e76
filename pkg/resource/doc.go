// Package resource defines the AWS records rendered by vpctree.
//
// Field names and JSON tags match the output of the AWS CLI describe-*
// commands, so the documents produced by
//
//	aws ec2 describe-subnets --filters Name=vpc-id,Values=vpc-0123 > subnets.json
//
// decode directly into these types. Only the fields used for rendering or
// filtering are declared; everything else in the documents is ignored.
//
// Besides the records, the package provides the field accessors used by the
// describers ([Tags.Value]) and order-preserving filters that narrow account
// wide collections down to one VPC.
package resource
