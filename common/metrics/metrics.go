package metrics

import (
	"fmt"
	"net/http"

	"github.com/arl/statsviz"
)

// NewMux 注册 /debug/statsviz/ 页面
func NewMux() (*http.ServeMux, error) {
	mux := http.NewServeMux()
	if err := statsviz.Register(mux); err != nil {
		return nil, fmt.Errorf("注册 statsviz 失败: %w", err)
	}
	return mux, nil
}

// Serve 阻塞运行监控服务
func Serve(addr string) error {
	mux, err := NewMux()
	if err != nil {
		return err
	}
	return http.ListenAndServe(addr, mux)
}
