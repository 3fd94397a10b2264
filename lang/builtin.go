package lang

import "maps"

// The built-in tables. They are copied into every built-in [Profile], so
// nothing here is ever handed out directly.

const ccache = `^CCACHE_CPP2=1;^CCACHE_UNIFY=1;'--with-ccache=/usr/bin/ccache;`

func currentTables() *Tables {
	const clang = `^CC=clang;^CXX=clang++;^CCACHE_CC=clang;^CXXFLAGS=-fcolor-diagnostics;`

	return &Tables{
		Compilers: map[string]CompilerDescriptor{
			"c": {
				Name:  "Clang",
				Flags: clang,
				Architectures: map[string]string{
					"d": ``,
					"4": `^AR=ar;^CC=-arch i386;^CXX=-arch i386;'--target=i686-linux-gnu;`,
				},
			},
			"g": {
				Name:  "GCC",
				Flags: `^CC=gcc;^CXX=g++;`,
				Architectures: map[string]string{
					"d": ``,
					"4": `^AR=ar;^CC=-m32;^CXX=-m32;'--target=i686-linux-gnu;`,
					"8": `^CC=-m64;^CXX=-m64;`,
					"X": `^CC=-mx32;^CXX=-mx32;`,
					"a": `^CC=-m32;^CXX=-m32;'--target=arm-linux-gnuabi;`,
					"A": `^AR=ar;^CC=-m32;^CXX=-m32;'--target=i686-linux-gnu;!ctypes+arm-simulator`,
				},
			},
			"d": {
				Name:  "Default",
				Flags: clang,
				Architectures: map[string]string{
					"d": ``,
				},
			},
		},
		Optimizations: map[string]string{
			"o": `+optimize!debug`,
			"d": `!optimize+debug`,
			"D": `+optimize+debug`,
		},
		Shortcuts: map[string]string{
			"C": ccache,
			"s": `+strip`,
			"d": `+debug-symbols`,
			"j": `+jemalloc`,
			"n": `+gcgenerational`,
			"r": `+root-analysis`,
			"x": `+exact-rooting`,
			"v": `+valgrind`,
			"z": `!ctypes`,
			"D": `+more-deterministic`,
			"O": `+oom-backtrace`,
			"c": `+ctypes`,
			"t": `+threadsafe`,
			"N": `=system-nspr`,
			"T": `+posix-nspr-emulation`,
			"i": `?intl-api`,
		},
		Macros: map[string]string{
			"tbpl":   `+signmar+stdcxx-compat!ctypes+trace-malloc.ccache!shared-js+posix-nspr-emulation`,
			"tbpl4":  `+signmar+stdcxx-compat!shared-js+trace-malloc*tC'--with-nspr-prefix=/usr/i686-linux-gnu;'--with-nspr-exec-prefix=/usr/i686-linux-gnu;`,
			"shell":  `+readline+xterm-updates`,
			"ccache": ccache,
			"dbg":    `+debug-symbols+valgrind+gczeal`,
			"def":    `.dbg.shell`,
			"ra":     `!threadsafe*rz`,
			"perf":   `*s`,
			"fuzz":   `.dbg+more-deterministic+methodjit+type-inference+profiling`,
			"ggc":    `+exact-rooting+gcgenerational`,
			"noggc":  `!gcgenerational`,
			"i":      `?intl-api`,
		},
	}
}

// legacyTables are the first-generation tables. Architectures were a single
// table shared by every compiler.
func legacyTables() *Tables {
	arch := map[string]string{
		"4": `^CC=-m32;^CXX=-m32;`,
		"8": `^CC=-m64;^CXX=-m64;`,
		"X": `^CC=-mx32;^CXX=-mx32;`,
		"D": ``,
	}

	compiler := func(name, flags string) CompilerDescriptor {
		return CompilerDescriptor{
			Name:          name,
			Flags:         flags,
			Architectures: maps.Clone(arch),
		}
	}

	return &Tables{
		Compilers: map[string]CompilerDescriptor{
			"c": compiler("Clang", `^CC=clang;^CXX=clang++;^CXXFLAGS=-fcolor-diagnostics;`),
			"g": compiler("GCC", `^CC=gcc;^CXX=g++;`),
			"D": compiler("Default", ``),
		},
		Optimizations: map[string]string{
			"o": `+optimize!debug`,
			"d": `!optimize+debug`,
			"D": `+optimize+debug`,
		},
		Shortcuts: map[string]string{
			"C": `'--with-ccache=/usr/bin/ccache;`,
			"s": `+strip`,
			"d": `+more-deterministic`,
			"D": `+dmd`,
			"j": `+jemalloc`,
			"n": `=system-nspr`,
			"r": `+root-analysis`,
			"x": `+exact-rooting`,
			"v": `+valgrind`,
			"z": `+gczeal`,
			"O": `+oom-backtrace`,
			"X": `+xterm-updates`,
			"R": `+readline`,
			"c": `+ctypes`,
			"t": `+threadsafe`,
		},
		Macros: map[string]string{
			"def":  `*jctRXnC`,
			"ra":   `!optimize+debug!threadsafe*Crvz`,
			"dbg":  `*dvz`,
			"perf": `*s`,
			"fuzz": `*dO`,
			"ggc":  `*nx`,
		},
	}
}
