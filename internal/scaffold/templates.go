package scaffold

import "fmt"

const defaultIndexHTML = `<!doctype html>
<html lang="en">
  <head>
    <meta charset="utf-8" />
    <title>vango + Vite + React</title>
  </head>
  <body>
    <div id="app"></div>
    <script type="module" src="/src/main.jsx"></script>
  </body>
</html>
`

const defaultAppJSX = `import React from "react";

function App() {
  return (
    <main className="app-root">
      <section className="app-card">
        <h1>vango + Vite + React</h1>
        <p>Frontend served by Vite, backend by Go.</p>
        <p className="hint">
          Edit <code>frontend/src/App.jsx</code> or <code>frontend/src/style.css</code>.
        </p>
      </section>
    </main>
  );
}

export default App;
`

const defaultMainJSX = `import React from "react";
import ReactDOM from "react-dom/client";
import App from "./App";
import "./style.css";

const rootElement = document.getElementById("app");

if (rootElement) {
  const root = ReactDOM.createRoot(rootElement);
  root.render(
    <React.StrictMode>
      <App />
    </React.StrictMode>
  );
}
`

const defaultStyleCSS = `html,
body {
  margin: 0;
  padding: 0;
}

body {
  font-family: system-ui, -apple-system, BlinkMacSystemFont, "Segoe UI", sans-serif;
}

.app-root {
  min-height: 100vh;
  display: flex;
  align-items: center;
  justify-content: center;
  background: #111827;
  color: #f9fafb;
}

.app-card {
  text-align: center;
  padding: 2.5rem 3rem;
  border-radius: 1.5rem;
  background: #020617;
  box-shadow:
    0 10px 30px rgba(15, 23, 42, 0.7),
    0 0 0 1px rgba(148, 163, 184, 0.15);
}

.app-card h1 {
  font-size: 2.4rem;
  margin-bottom: 0.75rem;
}

.app-card p {
  margin: 0.25rem 0;
}

.app-card .hint {
  opacity: 0.75;
  font-size: 0.9rem;
  margin-top: 0.75rem;
}
`

const defaultPackageJSON = `{
  "name": "vango-frontend",
  "private": true,
  "scripts": {
    "dev": "vite",
    "build": "vite build",
    "preview": "vite preview"
  },
  "dependencies": {
    "react": "^18.0.0",
    "react-dom": "^18.0.0"
  },
  "devDependencies": {
    "vite": "^6.0.0",
    "@vitejs/plugin-react-swc": "^3.0.0"
  }
}
`

// viteConfig renders the generated vite.config.js. The config reads the port
// environment variables vango injects, proxies /api to the backend, and pins
// the output to fixed artifact names in ../public so the backend can serve a
// known path.
func viteConfig(backendPort, vitePort int) string {
	return fmt.Sprintf(`import { defineConfig } from "vite";
import react from "@vitejs/plugin-react-swc";

const backendPort = Number(process.env.VANGO_BACKEND_PORT || "%d");
const vitePort = Number(process.env.VANGO_PORT || "%d");

export default defineConfig({
  root: ".",
  plugins: [react()],
  server: {
    port: vitePort,
    strictPort: true,
    proxy: {
      "/api": {
        target: "http://localhost:" + backendPort,
        changeOrigin: true
      }
    }
  },
  build: {
    outDir: "../public",
    emptyOutDir: true,
    rollupOptions: {
      input: "index.html",
      output: {
        entryFileNames: "bundle.js",
        assetFileNames: (assetInfo) => {
          if (assetInfo.name && assetInfo.name.endsWith(".css")) {
            return "style.css";
          }
          return "[name][extname]";
        },
        chunkFileNames: "bundle-[hash].js"
      }
    }
  }
});
`, backendPort, vitePort)
}

// serverStub renders the Go backend created by "vango create".
func serverStub(name string) string {
	return fmt.Sprintf(`package main

import (
	"encoding/json"
	"net/http"
	"os"

	"github.com/vango-sh/vango"
)

func main() {
	prod := os.Getenv("PROD") == "1"

	app, err := vango.New(vango.Options{
		Name: %q,
		Prod: prod,
		Debug: !prod,
	})
	if err != nil {
		panic(err)
	}

	app.HandleFunc("GET /api/ping", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]bool{"ok": true})
	})

	if err := app.Run(); err != nil {
		panic(err)
	}
}
`, name)
}
