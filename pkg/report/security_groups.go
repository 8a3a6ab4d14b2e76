package report

import (
	"strconv"

	"github.com/matzehuels/vpctree/pkg/resource"
	"github.com/matzehuels/vpctree/pkg/tree"
)

// allProtocols is the IpProtocol value of rules that match all traffic.
const allProtocols = "-1"

// SecurityGroups describes security groups with their ingress and egress
// rules.
func SecurityGroups(path tree.Path, groups []resource.SecurityGroup) ([]string, error) {
	return tree.Render(path, HeadingSecurityGroups, groups, securityGroup)
}

func securityGroup(p tree.Path, g resource.SecurityGroup) ([]string, error) {
	if g.GroupID == "" {
		return nil, missing("security group", "GroupId")
	}
	lines := tree.Node(p, join(g.GroupID, g.GroupName))

	sub, err := children(p,
		permissions("Ingress Permissions:", g.IPPermissions),
		permissions("Egress Permissions:", g.IPPermissionsEgress),
	)
	if err != nil {
		return nil, err
	}
	return append(lines, sub...), nil
}

func permissions(heading string, perms []resource.IPPermission) section {
	return func(p tree.Path) ([]string, error) {
		return tree.Render(p, heading, perms, permission)
	}
}

func permission(p tree.Path, perm resource.IPPermission) ([]string, error) {
	lines := tree.Node(p, describePermission(perm))

	var v4, v6, prefixLists, groups []string
	for _, r := range perm.IPRanges {
		v4 = append(v4, r.CidrIP)
	}
	for _, r := range perm.IPv6Ranges {
		v6 = append(v6, r.CidrIPv6)
	}
	for _, pl := range perm.PrefixListIDs {
		prefixLists = append(prefixLists, pl.PrefixListID)
	}
	for _, pair := range perm.UserIDGroupPairs {
		groups = append(groups, pair.GroupID)
	}

	sub, err := children(p,
		leaves("IP Ranges:", v4),
		leaves("IPv6 Ranges:", v6),
		leaves("Prefix Lists:", prefixLists),
		leaves("Security Groups:", groups),
	)
	if err != nil {
		return nil, err
	}
	return append(lines, sub...), nil
}

// describePermission returns "All" for rules covering every protocol,
// otherwise "proto : from : to". Rules without a port range show the
// protocol alone.
func describePermission(perm resource.IPPermission) string {
	if perm.IPProtocol == allProtocols {
		return "All"
	}
	if perm.FromPort == nil || perm.ToPort == nil {
		return perm.IPProtocol
	}
	return join(perm.IPProtocol, strconv.Itoa(int(*perm.FromPort)), strconv.Itoa(int(*perm.ToPort)))
}
