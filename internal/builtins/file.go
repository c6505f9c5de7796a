package builtins

import (
	"os"
	"path/filepath"

	"github.com/cwbudde/go-dws/internal/errors"
	"github.com/cwbudde/go-dws/internal/lexer"
	"github.com/cwbudde/go-dws/internal/value"
)

// fileNamespace builds the `File` global object: filesystem utilities
// named in spec §6, grounded on filefuncs.cpp/filemod.cpp's host-file
// surface (readFile/read, readDirectory, readLink, exists, size,
// basename/dirname/extname).
func fileNamespace() *value.Object {
	ns := value.NewObject()
	for name, fn := range map[string]value.HostFuncImpl{
		"readFile":      fileRead,
		"read":          fileRead,
		"readDirectory": fileReadDirectory,
		"readLink":      fileReadLink,
		"exists":        fileExists,
		"size":          fileSize,
		"basename":      fileBasename,
		"dirname":       fileDirname,
		"extname":       fileExtname,
	} {
		ns.Set(name, &value.HostFunction{Name: "File." + name, Fn: fn})
	}
	return ns
}

func filePathArg(funcName string, pos lexer.Position, args []value.Value) (string, *errors.RuntimeError) {
	l := newArgLoader(funcName, args)
	s, err := l.str(pos)
	if err != nil {
		return "", err
	}
	if err := l.end(pos); err != nil {
		return "", err
	}
	return s.Val, nil
}

func fileRead(ctx value.CallContext, pos lexer.Position, args []value.Value) (value.Value, *errors.RuntimeError) {
	path, err := filePathArg("File.read", pos, args)
	if err != nil {
		return nil, err
	}
	data, readErr := os.ReadFile(path)
	if readErr != nil {
		return nil, errors.IOError(pos, "File.read: %s", readErr)
	}
	return value.String{Val: string(data)}, nil
}

func fileReadDirectory(ctx value.CallContext, pos lexer.Position, args []value.Value) (value.Value, *errors.RuntimeError) {
	path, err := filePathArg("File.readDirectory", pos, args)
	if err != nil {
		return nil, err
	}
	entries, readErr := os.ReadDir(path)
	if readErr != nil {
		return nil, errors.IOError(pos, "File.readDirectory: %s", readErr)
	}
	items := make([]value.Value, len(entries))
	for i, ent := range entries {
		items[i] = value.String{Val: ent.Name()}
	}
	return value.NewArrayValue(value.NewArray(items...)), nil
}

func fileReadLink(ctx value.CallContext, pos lexer.Position, args []value.Value) (value.Value, *errors.RuntimeError) {
	path, err := filePathArg("File.readLink", pos, args)
	if err != nil {
		return nil, err
	}
	target, readErr := os.Readlink(path)
	if readErr != nil {
		return nil, errors.OSError(pos, "File.readLink: %s", readErr)
	}
	return value.String{Val: target}, nil
}

func fileExists(ctx value.CallContext, pos lexer.Position, args []value.Value) (value.Value, *errors.RuntimeError) {
	path, err := filePathArg("File.exists", pos, args)
	if err != nil {
		return nil, err
	}
	if _, statErr := os.Stat(path); statErr != nil {
		return value.Int(0), nil
	}
	return value.Int(1), nil
}

func fileSize(ctx value.CallContext, pos lexer.Position, args []value.Value) (value.Value, *errors.RuntimeError) {
	path, err := filePathArg("File.size", pos, args)
	if err != nil {
		return nil, err
	}
	info, statErr := os.Stat(path)
	if statErr != nil {
		return nil, errors.OSError(pos, "File.size: %s", statErr)
	}
	return value.Int(info.Size()), nil
}

func fileBasename(ctx value.CallContext, pos lexer.Position, args []value.Value) (value.Value, *errors.RuntimeError) {
	path, err := filePathArg("File.basename", pos, args)
	if err != nil {
		return nil, err
	}
	return value.String{Val: filepath.Base(path)}, nil
}

func fileDirname(ctx value.CallContext, pos lexer.Position, args []value.Value) (value.Value, *errors.RuntimeError) {
	path, err := filePathArg("File.dirname", pos, args)
	if err != nil {
		return nil, err
	}
	return value.String{Val: filepath.Dir(path)}, nil
}

func fileExtname(ctx value.CallContext, pos lexer.Position, args []value.Value) (value.Value, *errors.RuntimeError) {
	path, err := filePathArg("File.extname", pos, args)
	if err != nil {
		return nil, err
	}
	return value.String{Val: filepath.Ext(path)}, nil
}
