package graphviz
