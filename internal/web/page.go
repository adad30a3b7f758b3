package web

import (
	"millionaire-display/internal/display"

	"github.com/a-h/templ"
)

// Page renders the full-window display document with the stage pre-rendered
// for vm. Later frames arrive over the push socket.
func Page(opts PageOptions, vm display.ViewModel) templ.Component {
	return component(func(m *markup) {
		m.raw(`<!doctype html>
<html lang="en">
  <head>
    <meta charset="utf-8"/>
    <meta name="viewport" content="width=device-width, initial-scale=1"/>
    <title>`)
		m.text(opts.Title)
		m.raw(`</title>
    <style>`, pageCSS, `</style>
  </head>
  <body>
    <main`)
		m.attr("id", opts.StageID)
		m.attr("class", "stage")
		m.attr("data-screen", string(vm.Screen))
		m.attr("data-overlay", string(vm.Overlay))
		m.attr("style", animationStyle(vm.Settings.AnimationDuration))
		m.raw(">")
		m.render(Stage(vm))
		m.raw(`</main>
    <div class="connection" id="connection" hidden>Reconnecting…</div>
    <script>`)
		m.raw(`const socketPath = "`, templ.EscapeString(opts.SocketPath), `";`)
		m.raw(pageScript)
		m.raw(`</script>
  </body>
</html>
`)
	})
}

func animationStyle(ms int) string {
	return "--anim: " + itoa(ms) + "ms"
}

const pageScript = `
      const stage = document.querySelector("main.stage");
      const banner = document.getElementById("connection");
      let retry = 500;

      function apply(msg) {
        if (msg.type === "view") {
          stage.dataset.screen = msg.view.screen;
          stage.dataset.overlay = msg.view.overlay || "";
          stage.style.setProperty("--anim", (msg.view.settings.animationDuration || 0) + "ms");
          return;
        }
        if (msg.type !== "html") {
          return;
        }
        const target = document.querySelector(msg.target);
        if (!target) {
          return;
        }
        if (msg.mode === "outer") {
          target.outerHTML = msg.html;
        } else {
          target.innerHTML = msg.html;
        }
      }

      function connect() {
        const scheme = location.protocol === "https:" ? "wss://" : "ws://";
        const ws = new WebSocket(scheme + location.host + socketPath);
        ws.onopen = () => {
          retry = 500;
          banner.hidden = true;
        };
        ws.onmessage = (event) => {
          const data = JSON.parse(event.data);
          (Array.isArray(data) ? data : [data]).forEach(apply);
        };
        ws.onclose = () => {
          banner.hidden = false;
          setTimeout(connect, retry);
          retry = Math.min(retry * 2, 10000);
        };
      }
      connect();
`

const pageCSS = `
      :root { --bg: #050a30; --panel: #0d1b6b; --gold: #f5c542; --text: #f4f6ff; --muted: #9aa6d8;
              --green: #2ecc71; --red: #e74c3c; --anim: 500ms; }
      * { box-sizing: border-box; }
      html, body { margin: 0; height: 100%; background: radial-gradient(circle at top, #14237a, var(--bg));
                   color: var(--text); font-family: "Segoe UI", system-ui, sans-serif; overflow: hidden; }
      .stage { position: relative; height: 100vh; padding: 3vh 3vw; display: flex; flex-direction: column; }
      .screen { flex: 1; display: flex; flex-direction: column; gap: 2vh; animation: fade var(--anim) ease; }
      @keyframes fade { from { opacity: 0; } to { opacity: 1; } }
      h1 { font-size: 5vh; margin: 0; color: var(--gold); text-align: center; }
      h2 { font-size: 3vh; margin: 0; color: var(--muted); text-align: center; font-weight: 400; }
      .loading { justify-content: center; align-items: center; }
      .loading .error { color: var(--red); font-size: 2.2vh; }
      .spinner { width: 6vh; height: 6vh; border: .6vh solid var(--panel); border-top-color: var(--gold);
                 border-radius: 50%; animation: spin 1s linear infinite; }
      @keyframes spin { to { transform: rotate(360deg); } }
      .teams { display: grid; grid-template-columns: repeat(auto-fill, minmax(22vw, 1fr)); gap: 1.5vh; }
      .team { background: var(--panel); border-radius: 1vh; padding: 1.5vh; border: 2px solid transparent; }
      .team.current { border-color: var(--gold); }
      .team.eliminated { opacity: .55; }
      .team .name { font-size: 2.4vh; font-weight: 600; }
      .team .meta { font-size: 1.8vh; color: var(--muted); }
      .lifeline { display: inline-block; margin-right: .6vw; font-size: 1.6vh; }
      .lifeline.used { text-decoration: line-through; opacity: .5; }
      .steps { list-style: none; padding: 0; margin: 0 auto; font-size: 2.6vh; }
      .steps li { padding: .6vh 0; color: var(--muted); }
      .steps li.done { color: var(--green); }
      .steps li.active { color: var(--gold); }
      .game { display: grid; grid-template-columns: 1fr 22vw; gap: 2vw; flex: 1; min-height: 0; }
      .board { display: flex; flex-direction: column; justify-content: flex-end; gap: 2vh; }
      .header { display: flex; justify-content: space-between; font-size: 2.4vh; color: var(--muted); }
      .question { background: var(--panel); border: 2px solid var(--gold); border-radius: 4vh; padding: 3vh;
                  font-size: 3.6vh; text-align: center; }
      .options { display: grid; grid-template-columns: 1fr 1fr; gap: 1.5vh; }
      .option { background: var(--panel); border: 2px solid var(--muted); border-radius: 4vh; padding: 2vh 2vw;
                font-size: 2.8vh; transition: all var(--anim); }
      .option .key { color: var(--gold); margin-right: 1vw; font-weight: 700; }
      .option.selected { background: #c77d00; border-color: var(--gold); }
      .option.correct { background: var(--green); border-color: var(--green); }
      .option.wrong { background: var(--red); border-color: var(--red); }
      .option.dimmed { opacity: .4; }
      .option.removed { visibility: hidden; }
      .between { text-align: center; font-size: 3vh; color: var(--muted); }
      .side { display: flex; flex-direction: column; gap: 2vh; min-height: 0; overflow: hidden; }
      .ladder { list-style: none; margin: 0; padding: 0; font-size: 2vh; }
      .ladder li { display: flex; justify-content: space-between; padding: .4vh 1vw; border-radius: .6vh; }
      .ladder li.milestone { color: var(--text); font-weight: 700; }
      .ladder li.passed { color: var(--muted); }
      .ladder li.current { background: var(--gold); color: var(--bg); }
      .overlay { position: absolute; inset: 0; display: flex; align-items: center; justify-content: center;
                 background: rgba(5, 10, 48, .82); animation: fade var(--anim) ease; }
      .card { background: var(--panel); border: 3px solid var(--gold); border-radius: 2vh; padding: 4vh 4vw;
              text-align: center; min-width: 40vw; }
      .card .big { font-size: 8vh; color: var(--gold); font-variant-numeric: tabular-nums; }
      .card.expiring .big { color: var(--red); }
      .card.won { border-color: var(--green); }
      .card.eliminated { border-color: var(--red); }
      .progress { height: 1vh; background: var(--bg); border-radius: 1vh; overflow: hidden; }
      .progress span { display: block; height: 100%; background: var(--gold); }
      .results ol { list-style: none; padding: 0; margin: 0 auto; width: 60vw; font-size: 3vh; }
      .results li { display: grid; grid-template-columns: 6vw 1fr auto; padding: 1vh 1vw;
                    background: var(--panel); margin-bottom: 1vh; border-radius: 1vh; }
      .results .rank { color: var(--gold); font-weight: 700; }
      .connection { position: fixed; bottom: 1vh; right: 1vw; background: var(--red); padding: .5vh 1vw;
                    border-radius: .6vh; font-size: 1.6vh; }
`
