package logger

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// Log 是一个全局的 logrus 实例，InitLogger 之前也可以直接使用（输出到stderr）
var Log = logrus.New()

// InitLogger 初始化全局的Logger实例：1、JSON格式 2、同时输出到控制台和文件 3、设置日志级别
func InitLogger(level, file string) error {
	Log = logrus.New()

	Log.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: "2006-01-02 15:04:05", // 自定义时间格式
	})

	// file为空时只输出到控制台
	var out io.Writer = os.Stdout
	if file != "" {
		f, err := os.OpenFile(file, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			return err
		}
		out = io.MultiWriter(os.Stdout, f)
	}
	Log.SetOutput(out)

	// 只有大于等于这个级别的日志才会输出，解析不了就用Info
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	Log.SetLevel(lvl)
	return nil
}
