// Package lib 包含基础设施工具库
//
// 本目录包含与信号槽语义无关的通用工具库：
//
//   - log: 基于 log/slog 的日志封装，按组件获取 LazyLogger
//
// # 使用示例
//
//	import "github.com/dep2p/go-sigslot/pkg/lib/log"
//
//	var logger = log.Logger("core/metrics")
//	logger.Debug("metrics written", "families", n)
package lib
