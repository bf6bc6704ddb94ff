package core

import (
	"path/filepath"
	"runtime"
	"sync"
	"time"
)

// Record represents one discrete log or alert event. A record is created at
// the emission call site and is never mutated once it enters a handler.
type Record struct {
	Time    time.Time
	Level   Level
	Message string
	Fields  []Field
	Caller  CallerInfo
}

// Bool returns the value of the boolean attribute key, or def when the
// attribute is absent or not a boolean. This is the lookup routing filters
// use, so that a call site that never sets an attribute still gets a
// deterministic, policy-defined outcome.
func (r *Record) Bool(key string, def bool) bool {
	for _, f := range r.Fields {
		if f.Key == key && f.Type == BoolType {
			return f.Int64 == 1
		}
	}
	return def
}

// CallerInfo contains information about the emitting call site
type CallerInfo struct {
	File      string
	ShortFile string
	Line      int
	Function  string
	Defined   bool
}

// recordPool reuses Record objects so emission does not allocate
var recordPool = sync.Pool{
	New: func() interface{} {
		return &Record{
			Fields: make([]Field, 0, 8),
		}
	},
}

// GetRecord retrieves a cleared Record from the pool
func GetRecord() *Record {
	r := recordPool.Get().(*Record)
	r.Time = time.Now()
	r.Fields = r.Fields[:0]
	r.Caller = CallerInfo{}
	return r
}

// PutRecord returns a Record to the pool. Only the component that
// terminally consumed the record may call this.
func PutRecord(r *Record) {
	if r == nil {
		return
	}
	r.Fields = r.Fields[:0]
	r.Message = ""
	r.Caller = CallerInfo{}
	recordPool.Put(r)
}

// GetCaller captures information about the caller skip frames up the stack
func GetCaller(skip int) CallerInfo {
	pc, file, line, ok := runtime.Caller(skip)
	if !ok {
		return CallerInfo{}
	}

	var funcName string
	if fn := runtime.FuncForPC(pc); fn != nil {
		funcName = fn.Name()
	}

	return CallerInfo{
		File:      file,
		ShortFile: filepath.Base(file),
		Line:      line,
		Function:  funcName,
		Defined:   true,
	}
}
