package config

import (
	"github.com/jxo-me/namesilo-ddns/consts"
)

// Domain 域名实体
type Domain struct {
	DomainName   string
	SubDomain    string
	UpdateStatus consts.UpdateStatusType // 更新状态
}

func (d Domain) String() string {
	if d.SubDomain != "" {
		return d.SubDomain + "." + d.DomainName
	}
	return d.DomainName
}

// Domains 一次同步涉及的IP和域名
type Domains struct {
	Ipv4Addr    string
	Ipv4Domains []*Domain
}
