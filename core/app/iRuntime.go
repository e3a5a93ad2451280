package app

import (
	reg "github.com/jxo-me/namesilo-ddns/core/registry"
	"github.com/jxo-me/namesilo-ddns/core/service"
)

type IRuntime interface {
	DDNSRegistry() reg.IRegistry[service.IDDNSService]
}
