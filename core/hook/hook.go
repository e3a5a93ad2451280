package hook

import (
	"context"

	"github.com/jxo-me/namesilo-ddns/config"
	"github.com/jxo-me/namesilo-ddns/consts"
)

type IHook interface {
	String() string
	ExecHook(ctx context.Context, domains *config.Domains) consts.UpdateStatusType
}
