package resource

// Tag is a key/value pair attached to a resource.
type Tag struct {
	Key   string `json:"Key"`
	Value string `json:"Value"`
}

// Vpc is a Virtual Private Cloud.
type Vpc struct {
	VpcID     string `json:"VpcId"`
	CidrBlock string `json:"CidrBlock"`
	State     string `json:"State,omitempty"`
	IsDefault bool   `json:"IsDefault"`
	Tags      Tags   `json:"Tags,omitempty"`
}

// Subnet is a VPC subnet.
type Subnet struct {
	SubnetID         string `json:"SubnetId"`
	VpcID            string `json:"VpcId"`
	AvailabilityZone string `json:"AvailabilityZone"`
	CidrBlock        string `json:"CidrBlock"`
	Tags             Tags   `json:"Tags,omitempty"`
}

// InstanceState is the lifecycle state of an EC2 instance.
type InstanceState struct {
	Name string `json:"Name"`
}

// GroupIdentifier references a security group from another resource.
type GroupIdentifier struct {
	GroupID   string `json:"GroupId"`
	GroupName string `json:"GroupName,omitempty"`
}

// Instance is an EC2 instance.
type Instance struct {
	InstanceID       string            `json:"InstanceId"`
	ImageID          string            `json:"ImageId"`
	InstanceType     string            `json:"InstanceType"`
	PrivateIPAddress string            `json:"PrivateIpAddress"`
	SubnetID         string            `json:"SubnetId"`
	VpcID            string            `json:"VpcId,omitempty"`
	State            InstanceState     `json:"State"`
	SecurityGroups   []GroupIdentifier `json:"SecurityGroups,omitempty"`
	Tags             Tags              `json:"Tags,omitempty"`
}

// Reservation groups instances launched together, as returned by
// describe-instances.
type Reservation struct {
	ReservationID string     `json:"ReservationId,omitempty"`
	Instances     []Instance `json:"Instances"`
}

// IPRange is an IPv4 CIDR in a security group rule.
type IPRange struct {
	CidrIP      string `json:"CidrIp"`
	Description string `json:"Description,omitempty"`
}

// IPv6Range is an IPv6 CIDR in a security group rule.
type IPv6Range struct {
	CidrIPv6    string `json:"CidrIpv6"`
	Description string `json:"Description,omitempty"`
}

// PrefixListID references a managed prefix list in a security group rule.
type PrefixListID struct {
	PrefixListID string `json:"PrefixListId"`
	Description  string `json:"Description,omitempty"`
}

// UserIDGroupPair references another security group in a rule.
type UserIDGroupPair struct {
	GroupID string `json:"GroupId"`
	UserID  string `json:"UserId,omitempty"`
}

// IPPermission is one ingress or egress rule of a security group.
// FromPort and ToPort are absent for protocol "-1".
type IPPermission struct {
	IPProtocol       string            `json:"IpProtocol"`
	FromPort         *int32            `json:"FromPort,omitempty"`
	ToPort           *int32            `json:"ToPort,omitempty"`
	IPRanges         []IPRange         `json:"IpRanges,omitempty"`
	IPv6Ranges       []IPv6Range       `json:"Ipv6Ranges,omitempty"`
	PrefixListIDs    []PrefixListID    `json:"PrefixListIds,omitempty"`
	UserIDGroupPairs []UserIDGroupPair `json:"UserIdGroupPairs,omitempty"`
}

// SecurityGroup is a VPC security group.
type SecurityGroup struct {
	GroupID             string         `json:"GroupId"`
	GroupName           string         `json:"GroupName"`
	Description         string         `json:"Description,omitempty"`
	VpcID               string         `json:"VpcId"`
	IPPermissions       []IPPermission `json:"IpPermissions,omitempty"`
	IPPermissionsEgress []IPPermission `json:"IpPermissionsEgress,omitempty"`
	Tags                Tags           `json:"Tags,omitempty"`
}

// AvailabilityZone places a load balancer node in a subnet.
type AvailabilityZone struct {
	ZoneName string `json:"ZoneName"`
	SubnetID string `json:"SubnetId"`
}

// LoadBalancer is an Elastic Load Balancing v2 load balancer.
type LoadBalancer struct {
	LoadBalancerArn   string             `json:"LoadBalancerArn"`
	LoadBalancerName  string             `json:"LoadBalancerName"`
	DNSName           string             `json:"DNSName,omitempty"`
	Scheme            string             `json:"Scheme,omitempty"`
	Type              string             `json:"Type,omitempty"`
	VpcID             string             `json:"VpcId"`
	AvailabilityZones []AvailabilityZone `json:"AvailabilityZones,omitempty"`
	SecurityGroups    []string           `json:"SecurityGroups,omitempty"`
}

// TargetGroup is an Elastic Load Balancing v2 target group.
type TargetGroup struct {
	TargetGroupArn   string   `json:"TargetGroupArn"`
	TargetGroupName  string   `json:"TargetGroupName"`
	Protocol         string   `json:"Protocol,omitempty"`
	Port             *int32   `json:"Port,omitempty"`
	TargetType       string   `json:"TargetType,omitempty"`
	VpcID            string   `json:"VpcId,omitempty"`
	LoadBalancerArns []string `json:"LoadBalancerArns,omitempty"`
}

// LaunchTemplateSpecification references a launch template version.
type LaunchTemplateSpecification struct {
	LaunchTemplateID   string `json:"LaunchTemplateId,omitempty"`
	LaunchTemplateName string `json:"LaunchTemplateName,omitempty"`
	Version            string `json:"Version,omitempty"`
}

// MixedInstancesLaunchTemplate is the launch template part of a mixed
// instances policy.
type MixedInstancesLaunchTemplate struct {
	LaunchTemplateSpecification LaunchTemplateSpecification `json:"LaunchTemplateSpecification"`
}

// MixedInstancesPolicy lets an auto scaling group combine instance types.
type MixedInstancesPolicy struct {
	LaunchTemplate MixedInstancesLaunchTemplate `json:"LaunchTemplate"`
}

// ASGInstance is an instance as reported by an auto scaling group.
type ASGInstance struct {
	InstanceID       string `json:"InstanceId"`
	AvailabilityZone string `json:"AvailabilityZone,omitempty"`
	LifecycleState   string `json:"LifecycleState,omitempty"`
	HealthStatus     string `json:"HealthStatus,omitempty"`
}

// AutoScalingGroup is an EC2 auto scaling group.
type AutoScalingGroup struct {
	AutoScalingGroupARN     string                       `json:"AutoScalingGroupARN"`
	AutoScalingGroupName    string                       `json:"AutoScalingGroupName"`
	MinSize                 int32                        `json:"MinSize"`
	MaxSize                 int32                        `json:"MaxSize"`
	DesiredCapacity         int32                        `json:"DesiredCapacity,omitempty"`
	LaunchConfigurationName string                       `json:"LaunchConfigurationName,omitempty"`
	LaunchTemplate          *LaunchTemplateSpecification `json:"LaunchTemplate,omitempty"`
	MixedInstancesPolicy    *MixedInstancesPolicy        `json:"MixedInstancesPolicy,omitempty"`
	VPCZoneIdentifier       string                       `json:"VPCZoneIdentifier"`
	Instances               []ASGInstance                `json:"Instances,omitempty"`
	LoadBalancerNames       []string                     `json:"LoadBalancerNames,omitempty"`
	TargetGroupARNs         []string                     `json:"TargetGroupARNs,omitempty"`
	Tags                    Tags                         `json:"Tags,omitempty"`
}
