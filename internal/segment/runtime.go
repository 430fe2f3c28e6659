package segment

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	ort "github.com/yalue/onnxruntime_go"
)

// EnvLibraryPath overrides the ONNX Runtime shared library location.
const EnvLibraryPath = "PHOTOMAT_ONNX_LIB"

var initOnce sync.Once

// initRuntime locates the ONNX Runtime shared library and initializes the
// environment exactly once per process.
func initRuntime() error {
	var initErr error
	initOnce.Do(func() {
		if ort.IsInitialized() {
			return
		}
		libPath, err := libraryPath()
		if err != nil {
			initErr = fmt.Errorf("failed to locate ONNX Runtime library: %w", err)
			return
		}
		ort.SetSharedLibraryPath(libPath)
		if err := ort.InitializeEnvironment(); err != nil {
			initErr = fmt.Errorf("failed to initialize ONNX Runtime: %w", err)
		}
	})
	return initErr
}

// libraryPath resolves the shared library from the environment override or
// from an onnxruntime/lib directory next to the executable or above the
// working directory.
func libraryPath() (string, error) {
	if p := os.Getenv(EnvLibraryPath); p != "" {
		if _, err := os.Stat(p); err != nil {
			return "", fmt.Errorf("%s points to %s: %w", EnvLibraryPath, p, err)
		}
		return p, nil
	}

	var libName string
	switch runtime.GOOS {
	case "linux":
		libName = "libonnxruntime.so"
	case "darwin":
		libName = "libonnxruntime.dylib"
	case "windows":
		libName = "onnxruntime.dll"
	default:
		return "", fmt.Errorf("unsupported operating system: %s", runtime.GOOS)
	}

	roots := make([]string, 0, 2)
	if execPath, err := os.Executable(); err == nil {
		roots = append(roots, filepath.Dir(execPath))
	}
	if cwd, err := os.Getwd(); err == nil {
		roots = append(roots, cwd)
	}

	for _, root := range roots {
		dir := root
		for {
			candidate := filepath.Join(dir, "onnxruntime", "lib", libName)
			if _, err := os.Stat(candidate); err == nil {
				return candidate, nil
			}
			parent := filepath.Dir(dir)
			if parent == dir {
				break
			}
			dir = parent
		}
	}
	return "", errors.New("no onnxruntime/lib directory found (set " + EnvLibraryPath + ")")
}
