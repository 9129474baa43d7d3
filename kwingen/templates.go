package kwingen

import "text/template"

// Script fragment templates. Values injected from user input (search term,
// window id) go through the js escaper so they survive the trip into a JS
// string literal; action fragments and the marker are trusted text and
// render raw. Every fragment starts and ends with a newline so concatenated
// fragments stay separated in the emitted script.
const scriptTemplateText = `
{{- define "header"}}
print("{{.Marker}} START");

function output_debug(message) {
{{- if .Debug}}
    print("{{.Marker}} DEBUG", message);
{{- end}}
}

function output_error(message) {
    print("{{.Marker}} ERROR", message);
}

function output_result(message) {
    print("{{.Marker}} RESULT", message);
}

function run() {
    var window_stack = [];
{{end}}

{{- define "footer"}}
}

run();

print("{{.Marker}} FINISH");
{{end}}

{{- define "enumerate"}}
{{- if .KDE5}}
    var t = workspace.clientList();
{{- else}}
    var t = workspace.windowList();
{{- end}}
{{- end}}

{{- define "search"}}
    output_debug("STEP search {{js .Term}}");
    var re = new RegExp("{{js .Term}}", "i");
{{- template "enumerate" .}}
    window_stack = [];
    for (var i = 0; i < t.length; i++) {
        var w = t[i];
        var candidates = [w.caption, w.resourceClass, w.resourceName, w.windowRole];
        output_debug(candidates);
{{- if .MatchAny}}
        for (var j = 0; j < candidates.length; j++) {
            if (candidates[j].search(re) >= 0) {
                window_stack.push(w);
                break;
            }
        }
{{- else}}
        var mismatch = false;
        for (var j = 0; j < candidates.length; j++) {
            if (candidates[j].search(re) < 0) {
                mismatch = true;
                break;
            }
        }
        if (!mismatch) {
            window_stack.push(w);
        }
{{- end}}
    }
{{end}}

{{- define "getactivewindow"}}
    output_debug("STEP getactivewindow");
    window_stack = [workspace.activeWindow];
{{end}}

{{- define "action_on_window_id"}}
    output_debug("STEP {{.Verb}}");
{{- template "enumerate" .}}
    for (var i = 0; i < t.length; i++) {
        var w = t[i];
        if (w.internalId == "{{js .WindowID}}") {
            {{.Action}}
            break;
        }
    }
{{end}}

{{- define "action_on_stack_item"}}
    output_debug("STEP {{.Verb}}");
    if (window_stack.length > 0) {
        if ({{.Index}} > window_stack.length || {{.Index}} < 1) {
            output_error("Invalid window stack selection '{{.Index}}' (out of range)");
        } else {
            var w = window_stack[{{.Index}} - 1];
            {{.Action}}
        }
    }
{{end}}

{{- define "action_on_stack_all"}}
    output_debug("STEP {{.Verb}}");
    for (var i = 0; i < window_stack.length; i++) {
        var w = window_stack[i];
        {{.Action}}
    }
{{end}}

{{- define "final_output"}}
    for (var i = 0; i < window_stack.length; i++) {
        output_result(window_stack[i].internalId);
    }
{{end}}`

var scriptTemplates = template.Must(template.New("script").Parse(scriptTemplateText))
