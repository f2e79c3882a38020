package hasher

import (
	"io"

	"github.com/cespare/xxhash/v2"
	"github.com/spf13/afero"

	"github.com/moyu-x/tidy-file/pkg/logger"
)

// Sum 计算文件内容的 xxHash 值
func Sum(fs afero.Fs, path string) (uint64, error) {
	file, err := fs.Open(path)
	if err != nil {
		logger.Get().Debug().Err(err).Msgf("无法打开文件: %s", path)
		return 0, err
	}
	defer file.Close()

	hash := xxhash.New()
	if _, err := io.Copy(hash, file); err != nil {
		logger.Get().Debug().Err(err).Msgf("计算哈希失败: %s", path)
		return 0, err
	}

	return hash.Sum64(), nil
}

// Equal 判断两个文件内容是否相同
func Equal(fs afero.Fs, a, b string) (bool, error) {
	sumA, err := Sum(fs, a)
	if err != nil {
		return false, err
	}
	sumB, err := Sum(fs, b)
	if err != nil {
		return false, err
	}
	return sumA == sumB, nil
}
