/**
 * 配置:配置热加载
 * @author: hxll
 * @date: 2025.11.18
 * @description: 基于fsnotify监听配置文件变更，运行时只热更新日志级别，其余配置重启生效
 * @func: WatchConfig
 */
package config

import (
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// WatchConfig 监听配置文件变更
// onLogLevelChange 在日志级别发生变化时回调，返回停止函数
func WatchConfig(configPath, env string, onLogLevelChange func(level string)) (func() error, error) {
	if configPath == "" {
		configPath = getDefaultConfigPath()
	}
	configFile := getConfigFileName(configPath, env)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create config watcher: %w", err)
	}

	// 监听目录而不是文件本身，编辑器原子写入会替换inode
	if err := watcher.Add(filepath.Dir(configFile)); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("failed to watch config dir: %w", err)
	}

	go func() {
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != filepath.Clean(configFile) {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
					continue
				}
				cfg, err := LoadConfig(configPath, env)
				if err != nil {
					// 配置变更非法时保持旧配置继续运行
					continue
				}
				if onLogLevelChange != nil {
					onLogLevelChange(cfg.Log.Level)
				}
			case _, ok := <-watcher.Errors:
				if !ok {
					return
				}
			}
		}
	}()

	return watcher.Close, nil
}
